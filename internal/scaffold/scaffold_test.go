package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enscribe/internal/model"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":          "hello-world",
		"  Go: the good parts ": "go-the-good-parts",
		"Ünïcode & more!":      "ünïcode-more",
		"---":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestCreateNewSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blog")
	require.NoError(t, CreateNewSite(dir))

	for _, f := range []string{
		"site.yaml", "templates/default/layout.html", "templates/default/post.html",
		"static/js/enscribe.js", "archetypes/post.json", "markdown/colophon.md",
	} {
		assert.FileExists(t, filepath.Join(dir, f))
	}

	// every sample document decodes
	raw, err := os.ReadFile(filepath.Join(dir, "content/posts/hello-world.json"))
	require.NoError(t, err)
	var p model.Post
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, "hello-world", p.Slug)
	require.NotNil(t, p.Content)
	assert.NotEmpty(t, p.Content.Root.Children)

	for _, name := range []string{"home", "about"} {
		raw, err := os.ReadFile(filepath.Join(dir, "content/pages", name+".json"))
		require.NoError(t, err)
		var page model.Page
		require.NoError(t, json.Unmarshal(raw, &page), name)
		assert.Len(t, page.Layout, 1)
	}
}

func TestCreateNewContent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blog")
	require.NoError(t, CreateNewSite(dir))
	cfg := filepath.Join(dir, "site.yaml")

	path, err := CreateNewContent("post", `Quotes "and" colons: fine`, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "content", "posts", "quotes-and-colons-fine.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var p model.Post
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, `Quotes "and" colons: fine`, p.Title)
	assert.Equal(t, "quotes-and-colons-fine", p.Slug)
	assert.False(t, p.PublishedAt.IsZero())
	require.Len(t, p.PopulatedAuthors, 1)
	assert.Equal(t, "Your Name", p.PopulatedAuthors[0].Name)

	_, err = CreateNewContent("post", "Quotes and colons fine", cfg)
	assert.ErrorContains(t, err, "already exists")

	path, err = CreateNewContent("page", "Now: 2024", cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "markdown", "now-2024.md"), path)
	md, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(md), `title: "Now: 2024"`)

	_, err = CreateNewContent("video", "x", cfg)
	assert.ErrorContains(t, err, `unknown content type "video"`)

	_, err = CreateNewContent("post", "!!!", cfg)
	assert.Error(t, err)
}
