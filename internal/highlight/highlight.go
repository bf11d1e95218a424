// Package highlight tokenizes source code into numbered lines of classed
// tokens and emits the matching stylesheet.
package highlight

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"go.uber.org/zap"
)

// DefaultStyle is used when no style is configured.
const DefaultStyle = "github-dark"

// Token is a run of source text and its CSS class ("" for plain text).
type Token struct {
	Class string
	Value string
}

// Line is one source line without its newline.
type Line []Token

// Text joins the token values of a line.
func (l Line) Text() string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Value)
	}
	return b.String()
}

// Highlighter wraps chroma. It is safe for concurrent use.
type Highlighter struct {
	style  *chroma.Style
	logger *zap.Logger
}

// New returns a highlighter using the named chroma style, falling back to
// chroma's default style for unknown names.
func New(style string, logger *zap.Logger) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Highlighter{style: styles.Get(style), logger: logger}
}

// Lexer resolves a language name or alias. Unknown and empty names get the
// plain text lexer.
func Lexer(language string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	return lexers.Fallback
}

// Tokenize splits code into exactly one Line per source line, counting a
// trailing newline as the start of an empty final line. Tokenization never
// fails: on lexer errors the code comes back as plain text.
func (h *Highlighter) Tokenize(code, language string) []Line {
	want := strings.Count(code, "\n") + 1
	it, err := chroma.Coalesce(Lexer(language)).Tokenise(nil, code)
	if err != nil {
		h.logger.Debug("tokenizer failed, using plain text", zap.String("language", language), zap.Error(err))
		return plain(code)
	}

	lines := make([]Line, 1, want)
	for _, tok := range it.Tokens() {
		cls := class(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], Token{Class: cls, Value: part})
			}
		}
	}

	// lexers may append a newline the source did not have
	for len(lines) > want {
		lines = lines[:len(lines)-1]
	}
	for len(lines) < want {
		lines = append(lines, nil)
	}
	return lines
}

func plain(code string) []Line {
	src := strings.Split(code, "\n")
	lines := make([]Line, len(src))
	for i, s := range src {
		if s != "" {
			lines[i] = Line{{Value: s}}
		}
	}
	return lines
}

func class(tt chroma.TokenType) string {
	for {
		if c, ok := chroma.StandardTypes[tt]; ok {
			return c
		}
		parent := tt.Parent()
		if parent == tt {
			return ""
		}
		tt = parent
	}
}

// WriteCSS writes the stylesheet for the classes Tokenize emits, scoped to
// elements carrying the "chroma" class.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(w, h.style)
}
