// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
	"unicode"

	"enscribe/internal/config"
)

// Directory names inside a site.
const (
	MarkdownDir  = "markdown"
	StaticDir    = "static"
	TemplatesDir = "templates"
	ArchetypeDir = "archetypes"
)

// CreateNewSite lays out a runnable site in the directory name.
func CreateNewSite(name string) error {
	fmt.Println("Scaffolding new site in:", name)
	mkdir := func(path string) error { return os.MkdirAll(filepath.Join(name, path), 0755) }
	writeFile := func(path, content string) error {
		return os.WriteFile(filepath.Join(name, path), []byte(content), 0644)
	}
	dirs := []string{
		"content/posts", "content/pages", "content/categories", "content/media",
		MarkdownDir, "static/css", "static/js", "static/images", "templates/default", ArchetypeDir,
	}
	for _, dir := range dirs {
		if err := mkdir(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		"site.yaml":                      siteYamlContent,
		".env.example":                   envExampleContent,
		"content/categories/web.json":    sampleCategoryContent,
		"content/posts/hello-world.json": samplePostContent,
		"content/pages/home.json":        sampleHomeContent,
		"content/pages/about.json":       sampleAboutContent,
		"markdown/colophon.md":           sampleMarkdownContent,
		"static/css/style.css":           staticCssContent,
		"static/js/enscribe.js":          staticJsContent,
		"templates/default/layout.html":  templateLayoutHtmlContent,
		"templates/default/header.html":  templateHeaderHtmlContent,
		"templates/default/footer.html":  templateFooterHtmlContent,
		"templates/default/home.html":    templateHomeHtmlContent,
		"templates/default/archive.html": templateArchiveHtmlContent,
		"templates/default/post.html":    templatePostHtmlContent,
		"templates/default/page.html":    templatePageHtmlContent,
		"archetypes/post.json":           archetypePostContent,
		"archetypes/page.md":             archetypePageContent,
	}
	for path, content := range files {
		if err := writeFile(path, content); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}
	fmt.Println("Site scaffolded. You can now:")
	fmt.Println("  cd", name)
	fmt.Println("  enscribe new post \"My first post\"")
	fmt.Println("  enscribe serve")
	return nil
}

// Slugify lower-cases title and joins its words with dashes.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// CreateNewContent writes a new post (content/posts/<slug>.json) or
// markdown page (markdown/<slug>.md) from the site's archetypes, relative
// to the directory holding configPath.
func CreateNewContent(contentType, title, configPath string) (string, error) {
	slug := Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("title %q has no usable characters", title)
	}
	site, err := config.LoadSiteConfig(configPath)
	if err != nil {
		return "", err
	}
	root := filepath.Dir(configPath)

	var path, archetype string
	switch contentType {
	case "post":
		path = filepath.Join(root, site.Source.Dir, "posts", slug+".json")
		archetype = "post.json"
	case "page":
		path = filepath.Join(root, MarkdownDir, slug+".md")
		archetype = "page.md"
	default:
		return "", fmt.Errorf("unknown content type %q (want post or page)", contentType)
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	archetypePath := filepath.Join(root, ArchetypeDir, archetype)
	tmplBytes, err := os.ReadFile(archetypePath)
	if err != nil {
		return "", fmt.Errorf("could not read archetype file %s: %w", archetypePath, err)
	}

	tmpl, err := template.New("archetype").Funcs(template.FuncMap{"json": jsonString}).Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse archetype file %s: %w", archetypePath, err)
	}

	data := struct {
		Title  string
		Slug   string
		Author string
		Date   string
	}{
		Title:  title,
		Slug:   slug,
		Author: site.Author,
		Date:   time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}

	var output bytes.Buffer
	if err := tmpl.Execute(&output, data); err != nil {
		return "", fmt.Errorf("failed to execute archetype template: %w", err)
	}

	if err := os.WriteFile(path, output.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func jsonString(s string) (string, error) {
	b, err := json.Marshal(s)
	return string(b), err
}
