package render

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"enscribe/internal/links"
	"enscribe/internal/model"
)

// CompactDescriptionLimit is the rune length compact cards cut
// descriptions to.
const CompactDescriptionLimit = 140

// CardDescription replaces every whitespace rune, NBSP included, with a
// space and, when limit is positive, cuts to limit runes with an ellipsis.
func CardDescription(s string, limit int) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// CategoryTitles lists the titles of populated categories. Unpopulated
// entries are skipped; populated ones without a title read "Untitled
// category".
func CategoryTitles(refs []model.Ref[model.Category]) []string {
	var out []string
	for _, c := range model.ResolvedValues(refs) {
		if c.Title == "" {
			out = append(out, "Untitled category")
			continue
		}
		out = append(out, c.Title)
	}
	return out
}

var categoryStyles = []struct {
	keywords []string
	class    string
}{
	{[]string{"crypto"}, "badge-crypto"},
	{[]string{"web"}, "badge-web"},
	{[]string{"reverse", "rev"}, "badge-reverse"},
	{[]string{"pwn", "binary exploitation"}, "badge-pwn"},
	{[]string{"misc"}, "badge-misc"},
	{[]string{"forensic"}, "badge-forensic"},
	{[]string{"osint"}, "badge-osint"},
	{[]string{"blockchain"}, "badge-blockchain"},
	{[]string{"ppc", "programming"}, "badge-ppc"},
}

// CategoryClass picks the badge color class for a category title by
// keyword, falling back to the neutral badge.
func CategoryClass(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	for _, s := range categoryStyles {
		for _, k := range s.keywords {
			if strings.Contains(t, k) {
				return s.class
			}
		}
	}
	return "badge-default"
}

// compactCard is the related posts card: cover, categories, title link
// and a shortened description.
func (w *Walker) compactCard(p model.Post) *html.Node {
	href := links.CollectionPath(links.PostsCollection, p.Slug)
	if p.Slug == "" {
		href = "/" + links.PostsCollection
	}

	media := el(atom.Div, "class", "card-media")
	if m, ok := p.Meta.Image.Value(); ok && m.URL != "" {
		img := w.r.media.Describe(m)
		media.AppendChild(el(atom.Img,
			"src", img.URL, "alt", img.Alt,
			"width", dimension(img.Width), "height", dimension(img.Height),
			"loading", "lazy"))
	} else {
		media.AppendChild(wrap(atom.Div, one(text("No image")), "class", "card-noimage"))
	}

	body := el(atom.Div, "class", "card-body")
	if cats := CategoryTitles(p.Categories); len(cats) > 0 {
		body.AppendChild(wrap(atom.Div, one(text(strings.ToUpper(strings.Join(cats, ", ")))), "class", "card-categories"))
	}
	title := p.Meta.Title
	if title == "" {
		title = p.Title
	}
	if title != "" {
		body.AppendChild(wrap(atom.H3, one(wrap(atom.A, one(text(title)), "href", href)), "class", "card-title"))
	}
	if d := CardDescription(p.Meta.Description, CompactDescriptionLimit); d != "" {
		body.AppendChild(wrap(atom.P, one(text(d)), "class", "card-description"))
	}

	return appendChildren(el(atom.Article, "class", "card card-compact"), media, body)
}
