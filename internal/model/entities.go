package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// ID accepts both string and numeric document ids.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

type Category struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug,omitempty"`
}

type Author struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type Media struct {
	ID        ID        `json:"id"`
	Alt       string    `json:"alt"`
	Caption   *Document `json:"caption,omitempty"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename,omitempty"`
	MimeType  string    `json:"mimeType,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Meta struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Image       Ref[Media] `json:"image"`
}

type Post struct {
	ID               ID              `json:"id"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	Content          *Document       `json:"content,omitempty"`
	Categories       []Ref[Category] `json:"categories,omitempty"`
	Tags             []Ref[Category] `json:"tags,omitempty"`
	HeroImage        Ref[Media]      `json:"heroImage"`
	Meta             Meta            `json:"meta"`
	PublishedAt      time.Time       `json:"publishedAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	LastEdited       time.Time       `json:"lastEdited"`
	PopulatedAuthors []Author        `json:"populatedAuthors,omitempty"`
	RelatedPosts     []Ref[Post]     `json:"relatedPosts,omitempty"`
	Status           string          `json:"_status,omitempty"`
}

// Date is the timestamp posts are ordered by: publishedAt, else createdAt.
func (p Post) Date() time.Time {
	if !p.PublishedAt.IsZero() {
		return p.PublishedAt
	}
	return p.CreatedAt
}

// Cover prefers the hero image over the SEO image.
func (p Post) Cover() (Media, bool) {
	if m, ok := p.HeroImage.Value(); ok {
		return m, true
	}
	return p.Meta.Image.Value()
}

type Page struct {
	ID      ID        `json:"id"`
	Title   string    `json:"title"`
	Slug    string    `json:"slug"`
	Layout  Blocks    `json:"layout,omitempty"`
	Content *Document `json:"content,omitempty"`
	Meta    Meta      `json:"meta"`
}

// LinkedDoc is the populated target of an internal link.
type LinkedDoc struct {
	ID    ID     `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title,omitempty"`
}

// DocRef points at a document in another collection.
type DocRef struct {
	RelationTo string         `json:"relationTo"`
	Value      Ref[LinkedDoc] `json:"value"`
}

// LinkFields is the fields bag of a rich text link node.
type LinkFields struct {
	LinkType string  `json:"linkType"`
	URL      string  `json:"url,omitempty"`
	NewTab   bool    `json:"newTab,omitempty"`
	Doc      *DocRef `json:"doc,omitempty"`
}

func (f LinkFields) Internal() bool { return f.LinkType == "internal" && f.Doc != nil }

// CMSLink is the link group used by blocks outside rich text (buttons, columns).
type CMSLink struct {
	Type       string  `json:"type"`
	NewTab     bool    `json:"newTab,omitempty"`
	Reference  *DocRef `json:"reference,omitempty"`
	URL        string  `json:"url,omitempty"`
	Label      string  `json:"label,omitempty"`
	Appearance string  `json:"appearance,omitempty"`
}

func (l CMSLink) Internal() bool { return l.Type == "reference" && l.Reference != nil }
