package render

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"enscribe/internal/model"
)

// cellContent runs header and cell text through inline math only. Text that
// held math is wrapped in a span; plain text stays a bare text node.
func cellContent(w *Walker, s string) *html.Node {
	if nodes, ok := w.r.math.Transform(s); ok {
		return wrap(atom.Span, nodes)
	}
	return text(s)
}

// renderTable emits one header row and one row per data row, padding short
// rows with empty cells. A table without headers renders nothing; one
// without rows gets a single placeholder row.
func renderTable(w *Walker, b model.TableBlock) ([]*html.Node, error) {
	if len(b.Headers) == 0 {
		return nil, nil
	}

	head := el(atom.Tr)
	for _, h := range b.Headers {
		head.AppendChild(wrap(atom.Th, one(cellContent(w, h.Header)), "scope", "col"))
	}

	body := el(atom.Tbody)
	if len(b.Rows) == 0 {
		body.AppendChild(wrap(atom.Tr, one(wrap(atom.Td, one(text("No rows added yet")),
			"colspan", strconv.Itoa(len(b.Headers)), "class", "table-empty"))))
	}
	for _, row := range b.Rows {
		tr := el(atom.Tr)
		for _, c := range row.Cells {
			tr.AppendChild(wrap(atom.Td, one(cellContent(w, c.Content))))
		}
		for i := len(row.Cells); i < len(b.Headers); i++ {
			tr.AppendChild(el(atom.Td))
		}
		body.AppendChild(tr)
	}

	table := appendChildren(el(atom.Table), wrap(atom.Thead, one(head)), body)
	return one(wrap(atom.Div, one(table), "class", "table-block")), nil
}
