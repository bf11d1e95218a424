package mathtex

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Span is one inline math match: Text[Start:End] is "$formula$".
type Span struct {
	Start, End int
	Formula    string
}

// Raw is the matched text including both delimiters.
func (s Span) Raw(text string) string { return text[s.Start:s.End] }

// FindSpans returns the non-overlapping inline math spans of text, left to
// right. A span opens on a "$" not preceded by "$", runs over at least one
// character that is neither "$" nor a newline, and closes on a "$" not
// followed by "$". "$$...$$" never matches.
func FindSpans(text string) []Span {
	var spans []Span
	i := 0
	for i < len(text) {
		open := strings.IndexByte(text[i:], '$')
		if open < 0 {
			break
		}
		open += i
		if open > 0 && text[open-1] == '$' {
			i = open + 1
			continue
		}
		j := open + 1
		for j < len(text) && text[j] != '$' && text[j] != '\n' {
			j++
		}
		if j == open+1 || j >= len(text) || text[j] != '$' || (j+1 < len(text) && text[j+1] == '$') {
			i = open + 1
			continue
		}
		spans = append(spans, Span{Start: open, End: j + 1, Formula: text[open+1 : j]})
		i = j + 1
	}
	return spans
}

// Transformer substitutes inline math spans in text leaves.
type Transformer struct {
	Engine Engine
	Logger *zap.Logger
}

// NewTransformer returns a transformer backed by engine, or by TeX when
// engine is nil.
func NewTransformer(engine Engine, logger *zap.Logger) *Transformer {
	if engine == nil {
		engine = TeX{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transformer{Engine: engine, Logger: logger}
}

type piece struct {
	literal string
	markup  string
	formula string
}

// split walks the spans of text. It returns nil when nothing was replaced.
func (t *Transformer) split(text string) []piece {
	if !strings.Contains(text, "$") {
		return nil
	}
	spans := FindSpans(text)
	if len(spans) == 0 {
		return nil
	}

	var pieces []piece
	last := 0
	replaced := false
	for _, s := range spans {
		if s.Start > last {
			pieces = append(pieces, piece{literal: text[last:s.Start]})
		}
		last = s.End

		formula := strings.TrimSpace(s.Formula)
		if formula == "" {
			pieces = append(pieces, piece{literal: s.Raw(text)})
			continue
		}
		markup, err := t.Engine.Render(formula, Inline)
		if err != nil {
			t.Logger.Debug("inline math left as text", zap.String("formula", formula), zap.Error(err))
			pieces = append(pieces, piece{literal: s.Raw(text)})
			continue
		}
		pieces = append(pieces, piece{markup: markup, formula: formula})
		replaced = true
	}
	if !replaced {
		return nil
	}
	if last < len(text) {
		pieces = append(pieces, piece{literal: text[last:]})
	}
	return pieces
}

// Transform renders the inline math of text as a node fragment. It reports
// false, and returns nothing, when text has no math to substitute so the
// caller can keep its plain text node.
func (t *Transformer) Transform(text string) ([]*html.Node, bool) {
	pieces := t.split(text)
	if pieces == nil {
		return nil, false
	}
	out := make([]*html.Node, 0, len(pieces))
	for _, p := range pieces {
		if p.markup == "" {
			out = append(out, &html.Node{Type: html.TextNode, Data: p.literal})
			continue
		}
		out = append(out, InlineMathNode(p.formula, p.markup))
	}
	return out, true
}

// TransformString is the markup variant of Transform: literal text is
// HTML-escaped and math spans are replaced by their markup. Text without
// math comes back escaped and otherwise unchanged.
func (t *Transformer) TransformString(text string) string {
	pieces := t.split(text)
	if pieces == nil {
		return html.EscapeString(text)
	}
	var b strings.Builder
	for _, p := range pieces {
		if p.markup == "" {
			b.WriteString(html.EscapeString(p.literal))
			continue
		}
		if err := html.Render(&b, InlineMathNode(p.formula, p.markup)); err != nil {
			b.WriteString(html.EscapeString("$" + p.formula + "$"))
		}
	}
	return b.String()
}

// InlineMathNode wraps rendered markup in <span class="inline-math">.
func InlineMathNode(formula, markup string) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr: []html.Attribute{
			{Key: "class", Val: "inline-math"},
			{Key: "data-formula", Val: formula},
		},
	}
	span.AppendChild(&html.Node{Type: html.RawNode, Data: markup})
	return span
}
