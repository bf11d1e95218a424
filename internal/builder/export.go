package builder

import (
	"fmt"
	"os"
	"path/filepath"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"enscribe/internal/model"
	"enscribe/internal/render"
	"enscribe/internal/util"
)

// exportConverters replace the interactive block markup with plain fenced
// code, which converts to clean markdown.
func exportConverters() []render.Option {
	return []render.Option{
		render.WithBlockConverter(model.KindCode, render.Typed(func(_ *render.Walker, b model.CodeBlock) ([]*html.Node, error) {
			return fence(b.Language, b.Code), nil
		})),
		render.WithBlockConverter(model.KindMermaid, render.Typed(func(_ *render.Walker, b model.MermaidBlock) ([]*html.Node, error) {
			return fence("mermaid", b.Diagram), nil
		})),
		render.WithBlockConverter(model.KindMath, render.Typed(func(_ *render.Walker, b model.MathBlock) ([]*html.Node, error) {
			return fence("latex", b.Formula), nil
		})),
	}
}

func fence(lang, code string) []*html.Node {
	if code == "" {
		return nil
	}
	pre := &html.Node{Type: html.ElementNode, DataAtom: atom.Pre, Data: "pre"}
	c := &html.Node{Type: html.ElementNode, DataAtom: atom.Code, Data: "code"}
	if lang != "" {
		c.Attr = []html.Attribute{{Key: "class", Val: "language-" + lang}}
	}
	c.AppendChild(&html.Node{Type: html.TextNode, Data: code})
	pre.AppendChild(c)
	return []*html.Node{pre}
}

// ExportMarkdown converts a post into a markdown document headed by its
// title.
func (b *Builder) ExportMarkdown(p model.Post) (string, error) {
	nodes, err := b.exporter.Render(p.Content)
	if err != nil {
		return "", err
	}
	article := &html.Node{Type: html.ElementNode, DataAtom: atom.Article, Data: "article"}
	h1 := &html.Node{Type: html.ElementNode, DataAtom: atom.H1, Data: "h1"}
	h1.AppendChild(&html.Node{Type: html.TextNode, Data: postTitle(p)})
	article.AppendChild(h1)
	for _, n := range nodes {
		article.AppendChild(n)
	}
	md, err := htmltomarkdown.ConvertNode(article)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return string(md), nil
}

func (b *Builder) writeMarkdownExport(outputDir string, p model.Post) error {
	md, err := b.ExportMarkdown(p)
	if err != nil {
		return err
	}
	path := filepath.Join(outputDir, filepath.Dir(util.OutputPath(postRoute(p.Slug))), "index.md")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(md), 0644)
}
