package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"enscribe/internal/builder"
	"enscribe/internal/config"
	"enscribe/internal/model"
	"enscribe/internal/readingtime"
	"enscribe/internal/render"
)

// loadDocument reads a rich text document from path ("-" is stdin). The
// file holds either the document itself ({"root": ...}) or a post or page
// whose content field is one.
func loadDocument(path string) (*model.Document, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	doc, err := model.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if doc.Root != nil {
		return doc, nil
	}
	var wrapper struct {
		Content *model.Document `json:"content"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if wrapper.Content == nil || wrapper.Content.Root == nil {
		return nil, fmt.Errorf("%s holds no rich text document", path)
	}
	return wrapper.Content, nil
}

// siteOrDefaults loads the site config when there is one, so render uses
// the configured media server, diagram theme and code style.
func siteOrDefaults() config.SiteConfig {
	site, err := config.LoadSiteConfig(app.configPath)
	if err != nil {
		return config.SiteConfig{
			Diagrams: config.DiagramConfig{Theme: config.DefaultDiagramTheme},
			Code:     config.CodeConfig{Style: config.DefaultCodeStyle},
		}
	}
	return site
}

var renderCmd = &cobra.Command{
	Use:   "render <file.json>",
	Short: "Render one rich text document to HTML on stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		r := render.New(builder.RendererOptions(siteOrDefaults(), logger)...)
		out, err := r.RenderHTML(doc)
		if err != nil {
			return err
		}
		logger.Debug("rendered", zap.String("file", args[0]), zap.Int("bytes", len(out)))
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <file.json>",
	Short: "Print the word count and reading time of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		words := readingtime.WordCount(doc)
		fmt.Fprintf(cmd.OutOrStdout(), "📝 %s, %s\n", readingtime.FormatWordCount(words), readingtime.FromWordCount(words))
		return nil
	},
}
