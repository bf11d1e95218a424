package render

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"enscribe/internal/links"
	"enscribe/internal/model"
)

// cmsAnchor renders a button or column link. Internal references must be
// populated.
func cmsAnchor(l model.CMSLink, class string) (*html.Node, error) {
	href, err := links.CMSHref(l)
	if err != nil {
		return nil, err
	}
	if l.Appearance != "" {
		class += " button-" + l.Appearance
	}
	a := wrap(atom.A, one(text(l.Label)), "href", href, "class", class)
	if l.NewTab {
		setAttr(a, "target", "_blank")
		setAttr(a, "rel", "noopener noreferrer")
	}
	return a, nil
}

func renderCallToAction(w *Walker, b model.CallToActionBlock) ([]*html.Node, error) {
	content, err := w.Document(b.RichText)
	if err != nil {
		return nil, err
	}
	box := appendChildren(el(atom.Div, "class", "cta"), wrap(atom.Div, content, "class", "cta-content"))
	if len(b.Links) > 0 {
		bar := el(atom.Div, "class", "cta-links")
		for _, l := range b.Links {
			a, err := cmsAnchor(l.Link, "button")
			if err != nil {
				return nil, err
			}
			bar.AppendChild(a)
		}
		box.AppendChild(bar)
	}
	return one(box), nil
}

// renderRelatedPosts emits the optional intro and a grid of compact cards.
// References that were not populated are skipped.
func renderRelatedPosts(w *Walker, b model.RelatedPostsBlock) ([]*html.Node, error) {
	posts := model.ResolvedValues(b.Docs)
	if len(posts) < len(b.Docs) {
		w.r.logger.Debug("related posts not populated", zap.Int("skipped", len(b.Docs)-len(posts)))
	}
	section := el(atom.Section, "class", "related-posts")
	if !b.IntroContent.IsEmpty() {
		intro, err := w.Document(b.IntroContent)
		if err != nil {
			return nil, err
		}
		section.AppendChild(wrap(atom.Div, intro, "class", "related-intro"))
	}
	grid := el(atom.Div, "class", "related-grid")
	for _, p := range posts {
		grid.AppendChild(w.compactCard(p))
	}
	section.AppendChild(grid)
	return one(section), nil
}

var columnSizes = map[string]bool{"oneThird": true, "half": true, "twoThirds": true, "full": true}

// renderContent lays out rich text columns, each with an optional link.
func renderContent(w *Walker, b model.ContentBlock) ([]*html.Node, error) {
	grid := el(atom.Div, "class", "content-columns")
	for _, col := range b.Columns {
		size := col.Size
		if !columnSizes[size] {
			size = "oneThird"
		}
		kids, err := w.Document(col.RichText)
		if err != nil {
			return nil, err
		}
		cell := wrap(atom.Div, kids, "class", "column column-"+size)
		if col.EnableLink {
			a, err := cmsAnchor(col.Link, "column-link")
			if err != nil {
				return nil, err
			}
			cell.AppendChild(a)
		}
		grid.AppendChild(cell)
	}
	return one(grid), nil
}
