package render

import (
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"enscribe/internal/model"
)

func dimension(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// figure emits an image with its caption rendered as rich text.
func (w *Walker) figure(src, alt string, width, height int, caption *model.Document) ([]*html.Node, error) {
	img := el(atom.Img,
		"src", src,
		"alt", alt,
		"width", dimension(width),
		"height", dimension(height),
		"loading", "lazy",
		"decoding", "async",
	)
	if alt == "" {
		// decorative images still need the attribute
		img.Attr = append(img.Attr, html.Attribute{Key: "alt"})
	}
	fig := appendChildren(el(atom.Figure, "class", "media-block"), img)
	if !caption.IsEmpty() {
		kids, err := w.Document(caption)
		if err != nil {
			return nil, err
		}
		fig.AppendChild(wrap(atom.Figcaption, kids, "class", "media-caption"))
	}
	return one(fig), nil
}

func renderMedia(w *Walker, b model.MediaBlock) ([]*html.Node, error) {
	if img, ok := w.r.media.Resolve(b.Media); ok {
		return w.figure(img.URL, img.Alt, img.Width, img.Height, img.Caption)
	}
	if b.StaticFallback != "" {
		return w.figure(b.StaticFallback, "", 0, 0, nil)
	}
	w.r.logger.Debug("media block without media", zap.String("id", b.Media.ID()))
	return nil, nil
}
