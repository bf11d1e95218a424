package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enscribe/internal/media"
	"enscribe/internal/model"
)

func renderBlock(t *testing.T, r *Renderer, b model.Block) string {
	t.Helper()
	return renderString(t, r, model.NewDocument(model.BlockNode(b)))
}

func TestBanner(t *testing.T) {
	r := newTestRenderer(t)
	body := model.NewDocument(para(model.Text("Careful", 0)))

	t.Run("default title", func(t *testing.T) {
		got := renderBlock(t, r, model.BannerBlock{Style: model.StyleWarning, Content: body})
		assert.Equal(t, `<details class="banner banner-warning banner-amber" data-style="warning" open="">`+
			`<summary class="banner-title"><span class="banner-icon icon-alert-triangle" aria-hidden="true"></span>`+
			`<span class="banner-label">Warning</span></summary>`+
			`<div class="banner-content"><p>Careful</p></div></details>`, got)
	})

	t.Run("custom title", func(t *testing.T) {
		got := renderBlock(t, r, model.BannerBlock{Style: model.StyleTip, Title: "Pro tip", Content: body})
		assert.Contains(t, got, `<span class="banner-label">Pro tip</span>`)
		assert.Contains(t, got, `banner-green`)
	})

	t.Run("unknown style renders as info", func(t *testing.T) {
		got := renderBlock(t, r, model.BannerBlock{Style: "shout"})
		assert.Contains(t, got, `data-style="info"`)
		assert.Contains(t, got, `banner-cyan`)
		assert.Contains(t, got, `<span class="banner-label">Info</span>`)
		assert.Contains(t, got, `<div class="banner-content"></div>`)
	})

	for style, look := range bannerLooks {
		assert.Equal(t, style, BannerStyleOf(style))
		assert.NotEmpty(t, look.title)
	}
	assert.Equal(t, model.StyleInfo, BannerStyleOf(""))
}

func TestCodeBlock(t *testing.T) {
	r := newTestRenderer(t)

	assert.Empty(t, renderBlock(t, r, model.CodeBlock{Language: "go"}))

	got := renderBlock(t, r, model.CodeBlock{Code: "a = 1\nb = 2\n", Language: "python", Title: "demo.py"})
	assert.Equal(t, 3, strings.Count(got, `<span class="line">`))
	assert.Contains(t, got, `<span class="ln" aria-hidden="true">3</span><span class="cl"></span>`)
	assert.Contains(t, got, `<span class="code-language">PYTHON</span>`)
	assert.Contains(t, got, `<span class="code-title">demo.py</span>`)
	assert.Contains(t, got, `aria-label="Copy code"`)
	assert.Contains(t, got, "data-code=\"a = 1\nb = 2\n\"")
	assert.Contains(t, got, `<pre class="chroma"><code class="language-python">`)

	plain := renderBlock(t, r, model.CodeBlock{Code: "<b>"})
	assert.NotContains(t, plain, "code-language")
	assert.Contains(t, plain, `<span class="cl">&lt;b&gt;</span>`)
	assert.Contains(t, plain, `<pre class="chroma"><code>`)
}

func TestMathBlock(t *testing.T) {
	r := newTestRenderer(t)

	assert.Empty(t, renderBlock(t, r, model.MathBlock{Formula: "  "}))
	assert.Equal(t, `<div class="math-block not-prose"><div class="math-display"><m>x^2</m></div></div>`,
		renderBlock(t, r, model.MathBlock{Formula: "x^2"}))

	got := renderBlock(t, r, model.MathBlock{Formula: "bad"})
	assert.Contains(t, got, `role="alert"`)
	assert.Contains(t, got, "Error rendering formula: boom")
	assert.Contains(t, got, "<pre>bad</pre>")
}

func TestMermaidBlock(t *testing.T) {
	r := newTestRenderer(t, WithDiagramTheme("dark"), WithIDGenerator(func() string { return "abc" }))

	assert.Empty(t, renderBlock(t, r, model.MermaidBlock{Diagram: "\n "}))

	got := renderBlock(t, r, model.MermaidBlock{Diagram: "graph TD\n  A-->B"})
	assert.Equal(t, `<div class="mermaid-block" data-state="rendering" data-theme="dark">`+
		`<div class="mermaid-status">Rendering diagram...</div>`+
		`<pre class="mermaid" id="mermaid-abc">graph TD`+"\n"+`  A--&gt;B</pre></div>`, got)

	for _, src := range []string{"flowchart-elk TD\n  A-->B", "info", "treemap-beta\n\"Root\""} {
		got := renderBlock(t, r, model.MermaidBlock{Diagram: src})
		assert.Contains(t, got, `data-state="rendering"`, src)
		assert.NotContains(t, got, `data-state="error"`, src)
	}

	bad := renderBlock(t, r, model.MermaidBlock{Diagram: "---\ntitle: x\n---\n%% nothing else"})
	assert.Contains(t, bad, `data-state="error"`)
	assert.Contains(t, bad, "Error rendering diagram: no diagram definition found")
	assert.Contains(t, bad, "<pre>---")
}

func TestDiagramKind(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		wantErr bool
	}{
		{name: "flowchart", src: "flowchart LR\nA-->B", want: "flowchart"},
		{name: "comments and directives", src: "%% note\n%%{init: {'theme':'forest'}}%%\nsequenceDiagram\nA->>B: hi", want: "sequenceDiagram"},
		{name: "front matter", src: "---\ntitle: x\n---\npie\n\"a\": 1", want: "pie"},
		{name: "semicolon", src: "graph;\nA-->B", want: "graph"},
		{name: "unterminated front matter", src: "---\ntitle: x", wantErr: true},
		{name: "newer type", src: "flowchart-elk TD\nA-->B", want: "flowchart-elk"},
		{name: "bare keyword", src: "info", want: "info"},
		{name: "only comments", src: "%% nothing", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiagramKind(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func headers(names ...string) []model.TableHeader {
	out := make([]model.TableHeader, len(names))
	for i, n := range names {
		out[i] = model.TableHeader{Header: n}
	}
	return out
}

func row(cells ...string) model.TableRow {
	r := model.TableRow{}
	for _, c := range cells {
		r.Cells = append(r.Cells, model.TableCell{Content: c})
	}
	return r
}

func TestTableBlock(t *testing.T) {
	r := newTestRenderer(t)

	t.Run("no headers", func(t *testing.T) {
		assert.Empty(t, renderBlock(t, r, model.TableBlock{Rows: []model.TableRow{row("a")}}))
	})

	t.Run("placeholder row", func(t *testing.T) {
		got := renderBlock(t, r, model.TableBlock{Headers: headers("A", "B", "C")})
		assert.Contains(t, got, `<tbody><tr><td colspan="3" class="table-empty">No rows added yet</td></tr></tbody>`)
	})

	t.Run("short rows padded", func(t *testing.T) {
		got := renderBlock(t, r, model.TableBlock{
			Headers: headers("A", "B", "C"),
			Rows:    []model.TableRow{row("1"), row("1", "2", "3")},
		})
		assert.Equal(t, `<div class="table-block"><table><thead><tr>`+
			`<th scope="col">A</th><th scope="col">B</th><th scope="col">C</th></tr></thead>`+
			`<tbody><tr><td>1</td><td></td><td></td></tr><tr><td>1</td><td>2</td><td>3</td></tr></tbody>`+
			`</table></div>`, got)
	})

	t.Run("math in cells", func(t *testing.T) {
		got := renderBlock(t, r, model.TableBlock{
			Headers: headers("$x$"),
			Rows:    []model.TableRow{row("area $y$ here"), row("plain")},
		})
		assert.Contains(t, got, `<th scope="col"><span><span class="inline-math" data-formula="x"><m>x</m></span></span></th>`)
		assert.Contains(t, got, `<td><span>area <span class="inline-math" data-formula="y"><m>y</m></span> here</span></td>`)
		assert.Contains(t, got, `<td>plain</td>`)
	})
}

func TestMediaBlock(t *testing.T) {
	r := newTestRenderer(t, WithMediaURL(media.URLBuilder{ServerURL: "https://cms.test"}))

	populated := model.Media{
		URL: "/media/a.png", Alt: "A cat", Width: 640, Height: 480,
		Caption: model.NewDocument(para(model.Text("Cap", 0))),
	}
	got := renderBlock(t, r, model.MediaBlock{Media: model.Resolved(populated)})
	assert.Equal(t, `<figure class="media-block">`+
		`<img src="https://cms.test/media/a.png" alt="A cat" width="640" height="480" loading="lazy" decoding="async"/>`+
		`<figcaption class="media-caption"><p>Cap</p></figcaption></figure>`, got)

	got = renderBlock(t, r, model.MediaBlock{Media: model.Unresolved[model.Media]("7"), StaticFallback: "/static/x.png"})
	assert.Equal(t, `<figure class="media-block"><img src="/static/x.png" loading="lazy" decoding="async" alt=""/></figure>`, got)

	assert.Empty(t, renderBlock(t, r, model.MediaBlock{Media: model.Unresolved[model.Media]("7")}))

	upload := &model.Node{Type: model.TypeUpload, RelationTo: "media", Upload: model.Resolved(model.Media{URL: "https://cdn.test/b.jpg"})}
	got = renderString(t, r, model.NewDocument(upload))
	assert.Contains(t, got, `<img src="https://cdn.test/b.jpg"`)
	assert.Empty(t, renderString(t, r, model.NewDocument(&model.Node{Type: model.TypeUpload, Upload: model.Unresolved[model.Media]("1")})))
}

func TestCallToAction(t *testing.T) {
	r := newTestRenderer(t)
	pageRef := &model.DocRef{RelationTo: "pages", Value: model.Resolved(model.LinkedDoc{Slug: "contact"})}

	got := renderBlock(t, r, model.CallToActionBlock{
		RichText: model.NewDocument(para(model.Text("Say hi", 0))),
		Links: []model.CTALink{
			{Link: model.CMSLink{Type: "reference", Reference: pageRef, Label: "Contact", Appearance: "default"}},
			{Link: model.CMSLink{Type: "custom", URL: "https://x.test", Label: "X", NewTab: true}},
		},
	})
	assert.Equal(t, `<div class="cta"><div class="cta-content"><p>Say hi</p></div><div class="cta-links">`+
		`<a href="/contact" class="button button-default">Contact</a>`+
		`<a href="https://x.test" class="button" target="_blank" rel="noopener noreferrer">X</a>`+
		`</div></div>`, got)

	_, err := r.Render(model.NewDocument(model.BlockNode(model.CallToActionBlock{
		Links: []model.CTALink{{Link: model.CMSLink{Type: "reference", Reference: &model.DocRef{RelationTo: "pages"}}}},
	})))
	assert.Error(t, err)
}

func TestRelatedPosts(t *testing.T) {
	r := newTestRenderer(t)
	long := strings.Repeat("word ", 40)
	post := model.Post{
		Title: "Heap tricks",
		Slug:  "heap-tricks",
		Categories: []model.Ref[model.Category]{
			model.Resolved(model.Category{Title: "Pwn"}),
			model.Unresolved[model.Category]("9"),
			model.Resolved(model.Category{}),
		},
		Meta: model.Meta{Description: long},
	}

	got := renderBlock(t, r, model.RelatedPostsBlock{
		IntroContent: model.NewDocument(para(model.Text("More", 0))),
		Docs:         []model.Ref[model.Post]{model.Resolved(post), model.Unresolved[model.Post]("2")},
	})
	assert.Equal(t, 1, strings.Count(got, `<article class="card card-compact">`))
	assert.Contains(t, got, `<div class="related-intro"><p>More</p></div>`)
	assert.Contains(t, got, `<div class="card-noimage">No image</div>`)
	assert.Contains(t, got, `<div class="card-categories">PWN, UNTITLED CATEGORY</div>`)
	assert.Contains(t, got, `<h3 class="card-title"><a href="/posts/heap-tricks">Heap tricks</a></h3>`)
	assert.Contains(t, got, "word…</p>")
}

func TestCardDescription(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "nbsp and newlines", in: "a\u00a0b\nc", want: "a b c"},
		{name: "short", in: "hello", limit: 140, want: "hello"},
		{name: "exact", in: strings.Repeat("x", 140), limit: 140, want: strings.Repeat("x", 140)},
		{name: "cut and trimmed", in: strings.Repeat("x", 139) + " yz", limit: 140, want: strings.Repeat("x", 139) + "…"},
		{name: "runes not bytes", in: strings.Repeat("é", 141), limit: 140, want: strings.Repeat("é", 140) + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CardDescription(tt.in, tt.limit))
		})
	}
}

func TestCategoryClass(t *testing.T) {
	tests := map[string]string{
		"Crypto":              "badge-crypto",
		"Web Exploitation":    "badge-web",
		"Reverse Engineering": "badge-reverse",
		"rev":                 "badge-reverse",
		"Binary Exploitation": "badge-pwn",
		"Forensics":           "badge-forensic",
		"OSINT":               "badge-osint",
		"Programming":         "badge-ppc",
		"Blockchain":          "badge-blockchain",
		"Misc":                "badge-misc",
		"Life":                "badge-default",
	}
	for in, want := range tests {
		assert.Equal(t, want, CategoryClass(in), in)
	}
}

func TestContentColumns(t *testing.T) {
	r := newTestRenderer(t)
	got := renderBlock(t, r, model.ContentBlock{Columns: []model.Column{
		{Size: "half", RichText: model.NewDocument(para(model.Text("L", 0)))},
		{Size: "weird", EnableLink: true, Link: model.CMSLink{Type: "custom", URL: "/r", Label: "More"}},
	}})
	assert.Equal(t, `<div class="content-columns">`+
		`<div class="column column-half"><p>L</p></div>`+
		`<div class="column column-oneThird"><a href="/r" class="column-link">More</a></div>`+
		`</div>`, got)
}
