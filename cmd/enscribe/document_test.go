package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docJSON = `{"root": {"type": "root", "children": [
	{"type": "paragraph", "children": [{"type": "text", "text": "one two three", "format": 2}]}
]}}`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDocument(t *testing.T) {
	doc, err := loadDocument(writeTemp(t, "doc.json", docJSON))
	require.NoError(t, err)
	require.NotNil(t, doc.Root)
	assert.Len(t, doc.Root.Children, 1)

	doc, err = loadDocument(writeTemp(t, "post.json", `{"title": "T", "content": `+docJSON+`}`))
	require.NoError(t, err)
	require.NotNil(t, doc.Root)

	_, err = loadDocument(writeTemp(t, "empty.json", `{"title": "T"}`))
	assert.ErrorContains(t, err, "holds no rich text document")

	_, err = loadDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRenderAndStatsCommands(t *testing.T) {
	path := writeTemp(t, "doc.json", docJSON)
	app.configPath = filepath.Join(t.TempDir(), "site.yaml")

	var out bytes.Buffer
	renderCmd.SetOut(&out)
	require.NoError(t, renderCmd.RunE(renderCmd, []string{path}))
	assert.Equal(t, "<p><strong>one two three</strong></p>", strings.TrimSpace(out.String()))

	out.Reset()
	statsCmd.SetOut(&out)
	require.NoError(t, statsCmd.RunE(statsCmd, []string{path}))
	assert.Equal(t, "📝 3 words, 1 min read\n", out.String())
}
