package render

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"enscribe/internal/model"
)

// renderCode emits a header bar (language badge, title, copy button) over
// a numbered, highlighted listing. Empty code renders nothing.
func renderCode(w *Walker, b model.CodeBlock) ([]*html.Node, error) {
	if b.Code == "" {
		return nil, nil
	}
	lang := strings.TrimSpace(b.Language)

	header := el(atom.Div, "class", "code-header")
	if lang != "" {
		appendChildren(header, wrap(atom.Span, one(text(strings.ToUpper(lang))), "class", "code-language"))
	}
	if b.Title != "" {
		appendChildren(header, wrap(atom.Span, one(text(b.Title)), "class", "code-title"))
	}
	appendChildren(header, wrap(atom.Button, one(text("Copy")),
		"type", "button",
		"class", "copy-button",
		"aria-label", "Copy code",
		"data-code", b.Code,
	))

	code := el(atom.Code, "class", "language-"+lang)
	if lang == "" {
		code.Attr = nil
	}
	for i, line := range w.r.highlighter.Tokenize(b.Code, lang) {
		if i > 0 {
			code.AppendChild(text("\n"))
		}
		cl := el(atom.Span, "class", "cl")
		for _, tok := range line {
			if tok.Class == "" {
				cl.AppendChild(text(tok.Value))
				continue
			}
			cl.AppendChild(wrap(atom.Span, one(text(tok.Value)), "class", tok.Class))
		}
		appendChildren(code, appendChildren(el(atom.Span, "class", "line"),
			wrap(atom.Span, one(text(strconv.Itoa(i+1))), "class", "ln", "aria-hidden", "true"),
			cl,
		))
	}

	return one(appendChildren(el(atom.Div, "class", "code-block", "data-language", lang),
		header,
		wrap(atom.Pre, one(code), "class", "chroma"),
	)), nil
}
