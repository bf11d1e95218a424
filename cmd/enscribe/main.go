// cmd/enscribe/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"enscribe/internal/builder"
	"enscribe/internal/config"
	"enscribe/internal/content"
	"enscribe/internal/mathtex"
	"enscribe/internal/scaffold"
	"enscribe/internal/server"
)

const outputDir = "public"

type appConfig struct {
	configPath string
	debug      bool
	port       int
	unsafe     bool
	drafts     bool
}

var app appConfig

var rootCmd = &cobra.Command{
	Use:           "enscribe",
	Short:         "Static site generator for a blog backed by a headless CMS",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "site.yaml", "Path to the site configuration file.")
	rootCmd.PersistentFlags().BoolVar(&app.debug, "debug", false, "Enable debug logging.")
	rootCmd.PersistentFlags().BoolVar(&app.unsafe, "unsafe", false, "Disable HTML sanitization of rendered content.")
	rootCmd.PersistentFlags().BoolVar(&app.drafts, "drafts", false, "Include draft documents.")
	serveCmd.Flags().IntVarP(&app.port, "port", "p", 1313, "Port for the local development server.")

	newCmd.AddCommand(newSiteCmd, newPostCmd, newPageCmd)
	rootCmd.AddCommand(genCmd, serveCmd, newCmd, renderCmd, statsCmd)
}

func newLogger() (*zap.Logger, error) {
	if app.debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func buildOptions() builder.BuildOptions {
	return builder.BuildOptions{Unsafe: app.unsafe, Debug: app.debug, Drafts: app.drafts}
}

func newSource(site config.SiteConfig, root string, logger *zap.Logger) content.Source {
	if site.Source.Kind == config.SourceHTTP {
		return content.NewHTTPSource(site.Source.URL, logger, content.WithAPIKey(site.Source.APIKey))
	}
	dir := site.Source.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return content.NewFileSource(dir, logger)
}

// runFullBuild loads the config and templates fresh, so the dev server
// picks up edits to either.
func runFullBuild(ctx context.Context, logger *zap.Logger, opts builder.BuildOptions) (int, error) {
	site, err := config.LoadSiteConfig(app.configPath)
	if err != nil {
		return 0, err
	}
	root := filepath.Dir(app.configPath)

	math := mathtex.NewTransformer(mathtex.TeX{Macros: site.Math.Macros}, logger)
	tmpl, err := builder.LoadTemplates(filepath.Join(root, scaffold.TemplatesDir), site.Template, math.TransformString)
	if err != nil {
		return 0, fmt.Errorf("failed to load templates: %w", err)
	}

	store := content.NewStore(newSource(site, root, logger), app.drafts, logger)
	b := builder.New(site, store, tmpl, logger, opts)
	return b.Build(ctx,
		filepath.Join(root, outputDir),
		filepath.Join(root, scaffold.MarkdownDir),
		filepath.Join(root, scaffold.StaticDir))
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate the site into ./public",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		opts := buildOptions()
		opts.CleanDestination = true
		fmt.Println("--- Generating site from content ---")
		pageCount, err := runFullBuild(cmd.Context(), logger, opts)
		if err != nil {
			return fmt.Errorf("site generation failed: %w", err)
		}
		fmt.Printf("✅ Success! Generated %d pages.\n", pageCount)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site locally and rebuild on changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		root := filepath.Dir(app.configPath)
		site, err := config.LoadSiteConfig(app.configPath)
		if err != nil {
			return err
		}
		watch := []string{
			app.configPath,
			filepath.Join(root, scaffold.TemplatesDir),
			filepath.Join(root, scaffold.StaticDir),
			filepath.Join(root, scaffold.MarkdownDir),
		}
		if site.Source.Kind == config.SourceFile {
			watch = append(watch, filepath.Join(root, site.Source.Dir))
		}

		build := func(ctx context.Context, opts builder.BuildOptions) error {
			n, err := runFullBuild(ctx, logger, opts)
			if err == nil {
				fmt.Printf("✅ Generated %d pages.\n", n)
			}
			return err
		}
		srv := server.New(build, server.Options{
			Port:      app.port,
			PublicDir: filepath.Join(root, outputDir),
			Watch:     watch,
			Build:     buildOptions(),
			Logger:    logger,
		})
		return srv.Run(cmd.Context())
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new site, post or page",
}

var newSiteCmd = &cobra.Command{
	Use:   "site <name>",
	Short: "Scaffold a new site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scaffold.CreateNewSite(args[0])
	},
}

func newContentCmd(kind string) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <title>",
		Short: "Create a new " + kind + " from its archetype",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := scaffold.CreateNewContent(kind, args[0], app.configPath)
			if err != nil {
				return err
			}
			fmt.Println("Created:", path)
			return nil
		},
	}
}

var (
	newPostCmd = newContentCmd("post")
	newPageCmd = newContentCmd("page")
)
