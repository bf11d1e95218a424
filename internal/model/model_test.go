package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefDecoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		resolved bool
		id       string
		slug     string
	}{
		{name: "string id", input: `"6650f1"`, id: "6650f1"},
		{name: "numeric id", input: `42`, id: "42"},
		{name: "null", input: `null`},
		{name: "object", input: `{"id": 7, "slug": "hello"}`, resolved: true, slug: "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref Ref[LinkedDoc]
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ref))
			assert.Equal(t, tt.resolved, ref.IsResolved())
			assert.Equal(t, tt.id, ref.ID())
			doc, ok := ref.Value()
			assert.Equal(t, tt.resolved, ok)
			assert.Equal(t, tt.slug, doc.Slug)
		})
	}
}

func TestRefRejectsArrays(t *testing.T) {
	var ref Ref[Media]
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &ref))
}

func TestParseDocument(t *testing.T) {
	src := `{"root": {"type": "root", "format": "", "children": [
		{"type": "heading", "tag": "h2", "format": "center", "children": [
			{"type": "text", "text": "Title", "format": 3}
		]},
		{"type": "list", "listType": "number", "start": 3, "children": [
			{"type": "listitem", "value": 3, "children": [{"type": "text", "text": "x"}]}
		]},
		{"type": "link", "fields": {"linkType": "internal", "doc": {"relationTo": "posts", "value": {"id": "1", "slug": "hello"}}}, "children": []},
		{"type": "upload", "relationTo": "media", "value": "abc"}
	]}}`

	doc, err := ParseDocument([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Root.Children, 4)

	heading := doc.Root.Children[0]
	assert.Equal(t, "h2", heading.Tag)
	assert.Equal(t, "center", heading.Align)
	text := heading.Children[0]
	assert.True(t, text.Format.Has(FormatCode))
	assert.True(t, text.Format.Has(FormatBold))
	assert.False(t, text.Format.Has(FormatItalic))

	legacy := &Node{}
	require.NoError(t, json.Unmarshal([]byte(`{"type": "text", "text": "x", "format": 2, "code": true}`), legacy))
	assert.True(t, legacy.Format.Has(FormatCode))
	assert.True(t, legacy.Format.Has(FormatBold))

	list := doc.Root.Children[1]
	assert.Equal(t, 3, list.Start)
	assert.Equal(t, 3, list.Children[0].Value)

	link := doc.Root.Children[2]
	require.NotNil(t, link.Link)
	assert.True(t, link.Link.Internal())
	target, ok := link.Link.Doc.Value.Value()
	require.True(t, ok)
	assert.Equal(t, "hello", target.Slug)

	upload := doc.Root.Children[3]
	assert.False(t, upload.Upload.IsResolved())
	assert.Equal(t, "abc", upload.Upload.ID())
}

func TestDecodeErrorCarriesPath(t *testing.T) {
	src := `{"root": {"type": "root", "children": [
		{"type": "paragraph", "children": [{"type": "text", "format": "bold?"}]},
		{"type": "paragraph", "children": [{"type": "text", "format": {"x": 1}}]}
	]}}`
	_, err := ParseDocument([]byte(src))
	require.Error(t, err)

	var de *Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "root.children[1].children[0].format", de.Path)
}

func TestDecodeBlock(t *testing.T) {
	t.Run("callout becomes banner", func(t *testing.T) {
		blk, err := DecodeBlock([]byte(`{"blockType": "callout", "type": "tip", "title": "Hint"}`))
		require.NoError(t, err)
		banner, ok := blk.(BannerBlock)
		require.True(t, ok)
		assert.Equal(t, StyleTip, banner.Style)
		assert.Equal(t, "Hint", banner.Title)
	})

	t.Run("callout without type defaults to note", func(t *testing.T) {
		blk, err := DecodeBlock([]byte(`{"blockType": "callout"}`))
		require.NoError(t, err)
		assert.Equal(t, StyleNote, blk.(BannerBlock).Style)
	})

	t.Run("banner with legacy type field", func(t *testing.T) {
		blk, err := DecodeBlock([]byte(`{"blockType": "banner", "type": "warning"}`))
		require.NoError(t, err)
		assert.Equal(t, StyleWarning, blk.(BannerBlock).Style)
	})

	t.Run("style wins over type", func(t *testing.T) {
		blk, err := DecodeBlock([]byte(`{"blockType": "banner", "style": "error", "type": "warning"}`))
		require.NoError(t, err)
		assert.Equal(t, StyleError, blk.(BannerBlock).Style)
	})

	t.Run("extra fields are ignored", func(t *testing.T) {
		blk, err := DecodeBlock([]byte(`{"blockType": "code", "code": "x := 1", "language": "go", "blockName": "snippet", "wrap": true}`))
		require.NoError(t, err)
		code := blk.(CodeBlock)
		assert.Equal(t, "x := 1", code.Code)
		assert.Equal(t, "go", code.Language)
	})

	t.Run("unknown kind", func(t *testing.T) {
		blk, err := DecodeBlock([]byte(`{"blockType": "poll", "question": "?"}`))
		require.NoError(t, err)
		assert.Equal(t, BlockKind("poll"), blk.Kind())
		_, ok := blk.(UnknownBlock)
		assert.True(t, ok)
	})

	t.Run("related posts keep mixed references", func(t *testing.T) {
		blk, err := DecodeBlock([]byte(`{"blockType": "relatedPosts", "docs": ["a", {"id": "b", "slug": "bee", "title": "Bee"}]}`))
		require.NoError(t, err)
		rp := blk.(RelatedPostsBlock)
		require.Len(t, rp.Docs, 2)
		assert.False(t, rp.Docs[0].IsResolved())
		posts := ResolvedValues(rp.Docs)
		require.Len(t, posts, 1)
		assert.Equal(t, "bee", posts[0].Slug)
	})
}

func TestPageLayout(t *testing.T) {
	var page Page
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "slug": "home", "layout": [
		{"blockType": "homeLayout", "intro": {"eyebrow": "hi"}},
		{"blockType": "content", "columns": [{"size": "full"}]}
	]}`), &page))
	assert.Equal(t, ID("1"), page.ID)
	blk, ok := page.Layout.Find(KindHomeLayout)
	require.True(t, ok)
	assert.Equal(t, "hi", blk.(HomeLayoutBlock).Intro.Eyebrow)
}

func TestPostDateAndCover(t *testing.T) {
	var p Post
	require.NoError(t, json.Unmarshal([]byte(`{
		"createdAt": "2024-03-01T10:00:00Z",
		"publishedAt": null,
		"heroImage": "raw",
		"meta": {"image": {"id": "m", "url": "/media/m.png"}}
	}`), &p))
	assert.Equal(t, 2024, p.Date().Year())
	cover, ok := p.Cover()
	require.True(t, ok)
	assert.Equal(t, "/media/m.png", cover.URL)
}
