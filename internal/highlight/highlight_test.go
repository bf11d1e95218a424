package highlight

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func joinLines(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, "\n")
}

func TestTokenizeLineCount(t *testing.T) {
	h := New("", zaptest.NewLogger(t))
	tests := []struct {
		name     string
		code     string
		language string
		lines    int
	}{
		{name: "single", code: "x := 1", language: "go", lines: 1},
		{name: "trailing newline", code: "a\nb\n", language: "python", lines: 3},
		{name: "trailing blank lines", code: "a\n\n\n", language: "go", lines: 4},
		{name: "empty", code: "", language: "go", lines: 1},
		{name: "unknown language", code: "one\ntwo", language: "klingon", lines: 2},
		{name: "no language", code: "one\ntwo", lines: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := h.Tokenize(tt.code, tt.language)
			require.Len(t, lines, tt.lines)
			assert.Equal(t, tt.code, joinLines(lines))
		})
	}
}

func TestTokenizeClasses(t *testing.T) {
	h := New("monokai", nil)
	lines := h.Tokenize("func main() {\n\treturn\n}", "go")
	require.Len(t, lines, 3)

	var classes []string
	for _, tok := range lines[0] {
		if tok.Value == "func" {
			classes = append(classes, tok.Class)
		}
		assert.NotContains(t, tok.Value, "\n")
	}
	require.Len(t, classes, 1)
	assert.NotEmpty(t, classes[0])
}

func TestPlainTextFallback(t *testing.T) {
	h := New("", nil)
	lines := h.Tokenize("<b>hi</b>", "")
	require.Len(t, lines, 1)
	assert.Equal(t, "<b>hi</b>", lines[0].Text())
}

func TestLexerFallback(t *testing.T) {
	assert.NotNil(t, Lexer("no-such-language"))
	assert.Equal(t, "Go", Lexer("go").Config().Name)
}

func TestWriteCSS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("github-dark", nil).WriteCSS(&buf))
	assert.Contains(t, buf.String(), ".chroma")
}
