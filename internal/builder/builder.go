// internal/builder/builder.go
package builder

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"enscribe/internal/config"
	"enscribe/internal/content"
	"enscribe/internal/highlight"
	"enscribe/internal/mathtex"
	"enscribe/internal/media"
	"enscribe/internal/model"
	"enscribe/internal/render"
	"enscribe/internal/util"
)

type BuildOptions struct {
	CleanDestination bool
	Unsafe           bool
	Debug            bool
	// Drafts also builds markdown pages marked draft.
	Drafts bool
}

// Builder renders the documents of a content store into a static site.
type Builder struct {
	site      config.SiteConfig
	store     *content.Store
	renderer  *render.Renderer
	exporter  *render.Renderer
	tmpl      *template.Template
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
	opts      BuildOptions
}

// RendererOptions configures a renderer from the site config.
func RendererOptions(site config.SiteConfig, logger *zap.Logger) []render.Option {
	return []render.Option{
		render.WithLogger(logger),
		render.WithMediaURL(media.URLBuilder{ServerURL: site.Media.ServerURL}),
		render.WithDiagramTheme(site.Diagrams.Theme),
		render.WithHighlighter(highlight.New(site.Code.Style, logger)),
		render.WithMathEngine(mathtex.TeX{Macros: site.Math.Macros}),
	}
}

// New prepares a builder. extra options are applied after the ones derived
// from the site config.
func New(site config.SiteConfig, store *content.Store, tmpl *template.Template, logger *zap.Logger, opts BuildOptions, extra ...render.Option) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := append(RendererOptions(site, logger), extra...)
	return &Builder{
		site:      site,
		store:     store,
		renderer:  render.New(base...),
		exporter:  render.New(append(base, exportConverters()...)...),
		tmpl:      tmpl,
		sanitizer: newSanitizer(),
		logger:    logger,
		opts:      opts,
	}
}

// Build writes the whole site to outputDir and returns the number of pages
// generated. markdownDir and staticDir are optional.
func (b *Builder) Build(ctx context.Context, outputDir, markdownDir, staticDir string) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}

	if b.opts.CleanDestination {
		b.logger.Info("cleaning destination directory", zap.String("dir", outputDir))
		entries, err := os.ReadDir(outputDir)
		if err != nil {
			return 0, err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
				return 0, err
			}
		}
	}

	steps := []struct {
		name string
		run  func(context.Context, string) (int, error)
	}{
		{"home", b.buildHome},
		{"archive", b.buildArchive},
		{"posts", b.buildPosts},
		{"pages", b.buildPages},
	}
	pagesGenerated := 0
	for _, step := range steps {
		n, err := step.run(ctx, outputDir)
		if err != nil {
			return 0, fmt.Errorf("build %s: %w", step.name, err)
		}
		b.logger.Debug("built", zap.String("step", step.name), zap.Int("pages", n))
		pagesGenerated += n
	}

	if markdownDir != "" {
		n, err := b.buildMarkdown(outputDir, markdownDir)
		if err != nil {
			return 0, fmt.Errorf("build markdown pages: %w", err)
		}
		pagesGenerated += n
	}

	if err := b.writeStylesheet(outputDir); err != nil {
		return 0, err
	}
	if staticDir != "" {
		if err := copyStaticAssets(staticDir, outputDir); err != nil {
			return 0, err
		}
	}
	return pagesGenerated, nil
}

// richText renders a document and sanitizes the result unless the site
// opted out.
func (b *Builder) richText(doc *model.Document) (template.HTML, error) {
	nodes, err := b.renderer.Render(doc)
	if err != nil {
		return "", err
	}
	return b.markup(nodes)
}

func (b *Builder) markup(nodes []*html.Node) (template.HTML, error) {
	out, err := render.Serialize(nodes)
	if err != nil {
		return "", err
	}
	return template.HTML(b.sanitize(out)), nil
}

func (b *Builder) sanitize(s string) string {
	if b.opts.Unsafe || !b.site.ShouldSanitize() {
		return s
	}
	return b.sanitizer.Sanitize(s)
}

func (b *Builder) newPage(kind, route, title, description string) PageData {
	if description == "" {
		description = b.site.Description
	}
	return PageData{
		Kind:        kind,
		Route:       route,
		Title:       title,
		BaseHref:    util.ComputeBaseHref(util.OutputPath(route)),
		Author:      b.site.Author,
		Description: description,
		Site:        b.site,
	}
}

// write renders data at the output path of its route.
func (b *Builder) write(outputDir string, data PageData) error {
	outputPath := filepath.Join(outputDir, util.OutputPath(data.Route))
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}
	if err := renderPage(b.tmpl, outputPath, data); err != nil {
		return fmt.Errorf("failed to render page %s: %w", data.Route, err)
	}
	return nil
}

// buildMarkdown renders the markdown pages under markdownDir. A missing
// directory is not an error.
func (b *Builder) buildMarkdown(outputDir, markdownDir string) (int, error) {
	if _, err := os.Stat(markdownDir); os.IsNotExist(err) {
		return 0, nil
	}
	pagesGenerated := 0
	err := filepath.Walk(markdownDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(info.Name()) != ".md" {
			return nil
		}

		contentBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}
		if !utf8.Valid(contentBytes) {
			return fmt.Errorf("content file is not valid UTF-8: %s", path)
		}

		relPath, err := filepath.Rel(markdownDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		meta, htmlOut, err := processMarkdown(contentBytes, relPath)
		if err != nil {
			return fmt.Errorf("failed to process content for %s: %w", path, err)
		}
		if meta.Draft && !b.opts.Drafts {
			b.logger.Debug("skipping draft", zap.String("path", path))
			return nil
		}
		route, _ := markdownRoute(relPath, "")

		page := b.newPage(KindMarkdown, route, meta.Title, meta.Description)
		page.Content = template.HTML(b.sanitize(htmlOut))
		page.Params = meta.Params
		if err := b.write(outputDir, page); err != nil {
			return err
		}
		pagesGenerated++
		return nil
	})
	return pagesGenerated, err
}

func (b *Builder) writeStylesheet(outputDir string) error {
	path := filepath.Join(outputDir, "css", "chroma.css")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := b.renderer.Highlighter().WriteCSS(f); err != nil {
		return fmt.Errorf("write code stylesheet: %w", err)
	}
	return nil
}

// copyStaticAssets copies files from the static directory to the output directory.
func copyStaticAssets(staticDir, outputDir string) error {
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}
	allowedExts := map[string]bool{
		".css": true, ".js": true, ".txt": true, ".svg": true, ".ico": true,
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
		".woff": true, ".woff2": true,
	}
	return filepath.Walk(staticDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !allowedExts[strings.ToLower(filepath.Ext(info.Name()))] {
			return nil
		}

		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(outputDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		dst, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer dst.Close()
		_, err = io.Copy(dst, src)
		return err
	})
}

// renderPage executes the Go template and writes the output to a file.
func renderPage(tmpl *template.Template, outPath string, data PageData) error {
	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	// "main" is the name of the template defined within the layout file.
	return tmpl.ExecuteTemplate(outFile, "main", data)
}

// templateFiles are parsed from the theme directory, in this order.
var templateFiles = []string{
	"layout.html", "header.html", "footer.html",
	"home.html", "archive.html", "post.html", "page.html",
}

// LoadTemplates parses all necessary template files from a given theme directory.
func LoadTemplates(templateDir, templateName string, math func(string) string) (*template.Template, error) {
	path := filepath.Join(templateDir, templateName)
	files := make([]string, len(templateFiles))
	for i, name := range templateFiles {
		files[i] = filepath.Join(path, name)
	}
	tmpl, err := template.New("layout.html").Funcs(funcMap(math)).ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

const dateLayout = "Jan 2, 2006"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func funcMap(math func(string) string) template.FuncMap {
	if math == nil {
		math = template.HTMLEscapeString
	}
	return template.FuncMap{
		// mathText renders inline $...$ formulas in plain strings such as
		// titles. Literal text is escaped.
		"mathText":      func(s string) template.HTML { return template.HTML(math(s)) },
		"categoryClass": render.CategoryClass,
		"formatDate":    formatDate,
		"year":          func() int { return time.Now().Year() },
	}
}
