package render

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"enscribe/internal/model"
)

type bannerLook struct {
	icon  string
	color string
	title string
}

var bannerLooks = map[model.BannerStyle]bannerLook{
	model.StyleNote:      {icon: "info", color: "blue", title: "Note"},
	model.StyleWarning:   {icon: "alert-triangle", color: "amber", title: "Warning"},
	model.StyleTip:       {icon: "lightbulb", color: "green", title: "Tip"},
	model.StyleImportant: {icon: "alert-circle", color: "red", title: "Important"},
	model.StyleQuestion:  {icon: "help-circle", color: "purple", title: "Question"},
	model.StyleSuccess:   {icon: "check-circle", color: "green", title: "Success"},
	model.StyleError:     {icon: "x-circle", color: "red", title: "Error"},
	model.StyleInfo:      {icon: "info", color: "cyan", title: "Info"},
}

// BannerStyleOf resolves a stored style to a known one; empty and unknown
// styles render as info.
func BannerStyleOf(s model.BannerStyle) model.BannerStyle {
	if _, ok := bannerLooks[s]; ok {
		return s
	}
	return model.StyleInfo
}

// renderBanner emits a collapsible box, open by default, with an icon and
// title bar above the nested rich text.
func renderBanner(w *Walker, b model.BannerBlock) ([]*html.Node, error) {
	style := BannerStyleOf(b.Style)
	look := bannerLooks[style]
	title := b.Title
	if title == "" {
		title = look.title
	}

	content, err := w.Document(b.Content)
	if err != nil {
		return nil, err
	}

	summary := appendChildren(el(atom.Summary, "class", "banner-title"),
		el(atom.Span, "class", "banner-icon icon-"+look.icon, "aria-hidden", "true"),
		wrap(atom.Span, one(text(title)), "class", "banner-label"),
	)
	box := appendChildren(
		el(atom.Details, "class", "banner banner-"+string(style)+" banner-"+look.color, "data-style", string(style)),
		summary,
		wrap(atom.Div, content, "class", "banner-content"),
	)
	box.Attr = append(box.Attr, html.Attribute{Key: "open"})
	return one(box), nil
}
