// Package media builds public URLs and image descriptions for uploads.
package media

import (
	"net/url"
	"strings"
	"time"

	"enscribe/internal/model"
)

// URLBuilder prefixes relative upload URLs with the media server and
// appends a cache tag derived from the upload's last modification.
type URLBuilder struct {
	ServerURL string
}

// URL returns the absolute URL of an upload. Absolute inputs keep their
// host. An empty url yields "".
func (b URLBuilder) URL(raw string, updatedAt time.Time) string {
	if raw == "" {
		return ""
	}
	tag := ""
	if !updatedAt.IsZero() {
		tag = url.QueryEscape(updatedAt.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = strings.TrimSuffix(b.ServerURL, "/") + raw
	}
	if tag == "" {
		return raw
	}
	return raw + "?" + tag
}

// Image is everything a renderer needs to emit an <img>.
type Image struct {
	URL     string
	Alt     string
	Width   int
	Height  int
	Caption *model.Document
}

// Describe resolves a media document into an Image.
func (b URLBuilder) Describe(m model.Media) Image {
	return Image{
		URL:     b.URL(m.URL, m.UpdatedAt),
		Alt:     m.Alt,
		Width:   m.Width,
		Height:  m.Height,
		Caption: m.Caption,
	}
}

// Resolve describes a populated reference and reports false otherwise.
func (b URLBuilder) Resolve(ref model.Ref[model.Media]) (Image, bool) {
	m, ok := ref.Value()
	if !ok || m.URL == "" {
		return Image{}, false
	}
	return b.Describe(m), true
}
