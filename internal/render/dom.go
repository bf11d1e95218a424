package render

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// el builds an element. attrs alternate key, value; empty values are
// skipped.
func el(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func raw(s string) *html.Node {
	return &html.Node{Type: html.RawNode, Data: s}
}

func appendChildren(parent *html.Node, kids ...*html.Node) *html.Node {
	for _, k := range kids {
		if k != nil {
			parent.AppendChild(k)
		}
	}
	return parent
}

// wrap puts nodes inside a new element.
func wrap(a atom.Atom, kids []*html.Node, attrs ...string) *html.Node {
	return appendChildren(el(a, attrs...), kids...)
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func one(n *html.Node) []*html.Node { return []*html.Node{n} }

// textContent concatenates the text below n, the way a browser's
// textContent does.
func textContent(nodes []*html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return b.String()
}

// anchor turns heading text into a fragment id: lower case letters and
// digits, with runs of anything else collapsed to one hyphen.
func anchor(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}
