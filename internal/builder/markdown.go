package builder

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithASTTransformers(
			util.Prioritized(newMDLinkTransformer(), 100),
		),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// PageMeta holds the front matter of a markdown page.
type PageMeta struct {
	Title       string         `yaml:"title" toml:"title" json:"title"`
	Description string         `yaml:"description" toml:"description" json:"description"`
	Draft       bool           `yaml:"draft" toml:"draft" json:"draft"`
	Params      map[string]any `yaml:"params" toml:"params" json:"params"`
}

// markdownToHTML renders a markdown body found in dir (slash-separated,
// relative to the markdown root). Links to other .md files are rewritten to
// site routes.
func markdownToHTML(body []byte, dir string) (string, error) {
	pc := parser.NewContext()
	pc.Set(sourceDirKey, dir)
	var buf bytes.Buffer
	if err := markdownRenderer.Convert(body, &buf, parser.WithContext(pc)); err != nil {
		return "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}
	return buf.String(), nil
}

// processMarkdown separates front matter from the body and renders the body.
// A file without front matter is all body. name is the page's slash path
// below the markdown root.
func processMarkdown(raw []byte, name string) (PageMeta, string, error) {
	var meta PageMeta
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return PageMeta{}, "", fmt.Errorf("failed to parse front matter: %w", err)
	}
	if meta.Title == "" {
		meta.Title = titleFromName(name)
	}
	dir := path.Dir(name)
	if dir == "." {
		dir = ""
	}
	out, err := markdownToHTML(body, dir)
	if err != nil {
		return meta, "", err
	}
	return meta, out, nil
}

var titleCaser = cases.Title(language.English)

// titleFromName turns "getting-started.md" into "Getting Started".
func titleFromName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(base))
}
