package render

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"enscribe/internal/links"
	"enscribe/internal/model"
)

func defaultNodeConverters() map[string]NodeConverter {
	return map[string]NodeConverter{
		model.TypeRoot:           convertRoot,
		model.TypeParagraph:      convertParagraph,
		model.TypeHeading:        convertHeading,
		model.TypeList:           convertList,
		model.TypeListItem:       convertListItem,
		model.TypeQuote:          convertQuote,
		model.TypeLink:           convertLink,
		model.TypeAutoLink:       convertLink,
		model.TypeLineBreak:      convertLineBreak,
		model.TypeTab:            convertTab,
		model.TypeText:           convertText,
		model.TypeHorizontalRule: convertRule,
		model.TypeBlock:          convertBlockNode,
		model.TypeUpload:         convertUpload,
	}
}

func convertRoot(w *Walker, n *model.Node) ([]*html.Node, error) {
	return w.Children(n)
}

func alignClass(align string) string {
	switch align {
	case "center", "right", "justify", "end":
		return "text-" + align
	}
	return ""
}

func convertParagraph(w *Walker, n *model.Node) ([]*html.Node, error) {
	kids, err := w.Children(n)
	if err != nil {
		return nil, err
	}
	return one(wrap(atom.P, kids, "class", alignClass(n.Align))), nil
}

var headingTags = map[string]atom.Atom{
	"h1": atom.H1, "h2": atom.H2, "h3": atom.H3,
	"h4": atom.H4, "h5": atom.H5, "h6": atom.H6,
}

func convertHeading(w *Walker, n *model.Node) ([]*html.Node, error) {
	kids, err := w.Children(n)
	if err != nil {
		return nil, err
	}
	tag, ok := headingTags[n.Tag]
	if !ok {
		tag = atom.H2
	}
	id := w.uniqueID(textContent(kids))
	return one(wrap(tag, kids, "id", id, "class", alignClass(n.Align))), nil
}

func convertList(w *Walker, n *model.Node) ([]*html.Node, error) {
	kids, err := w.Children(n)
	if err != nil {
		return nil, err
	}
	switch n.ListType {
	case "number":
		start := ""
		if n.Start > 1 {
			start = strconv.Itoa(n.Start)
		}
		return one(wrap(atom.Ol, kids, "start", start)), nil
	case "check":
		return one(wrap(atom.Ul, kids, "class", "check-list")), nil
	default:
		return one(wrap(atom.Ul, kids)), nil
	}
}

func convertListItem(w *Walker, n *model.Node) ([]*html.Node, error) {
	kids, err := w.Children(n)
	if err != nil {
		return nil, err
	}
	li := wrap(atom.Li, kids)
	// an item holding only a list is a nesting wrapper, not a bullet
	if len(n.Children) == 1 && n.Children[0].Type == model.TypeList {
		setAttr(li, "class", "nested")
		return one(li), nil
	}
	if n.Checked != nil {
		state := "false"
		cls := "unchecked"
		if *n.Checked {
			state, cls = "true", "checked"
		}
		setAttr(li, "role", "checkbox")
		setAttr(li, "aria-checked", state)
		setAttr(li, "class", cls)
	}
	return one(li), nil
}

func convertQuote(w *Walker, n *model.Node) ([]*html.Node, error) {
	kids, err := w.Children(n)
	if err != nil {
		return nil, err
	}
	return one(wrap(atom.Blockquote, kids)), nil
}

func convertLink(w *Walker, n *model.Node) ([]*html.Node, error) {
	kids, err := w.Children(n)
	if err != nil {
		return nil, err
	}
	if n.Link == nil {
		return kids, nil
	}
	href, err := links.Href(*n.Link)
	if err != nil {
		return nil, fmt.Errorf("%s node: %w", n.Type, err)
	}
	a := wrap(atom.A, kids, "href", href)
	if n.Link.NewTab {
		setAttr(a, "target", "_blank")
		setAttr(a, "rel", "noopener noreferrer")
	}
	return one(a), nil
}

func convertLineBreak(*Walker, *model.Node) ([]*html.Node, error) {
	return one(el(atom.Br)), nil
}

func convertTab(*Walker, *model.Node) ([]*html.Node, error) {
	return one(text("\t")), nil
}

func convertRule(*Walker, *model.Node) ([]*html.Node, error) {
	return one(el(atom.Hr)), nil
}

// formatTags are applied innermost first, after code.
var formatTags = []struct {
	flag model.Format
	tag  atom.Atom
}{
	{model.FormatBold, atom.Strong},
	{model.FormatItalic, atom.Em},
	{model.FormatStrikethrough, atom.S},
	{model.FormatUnderline, atom.U},
	{model.FormatSubscript, atom.Sub},
	{model.FormatSuperscript, atom.Sup},
}

// convertText substitutes inline math, then wraps the result in <code> when
// the code flag is set, then applies the remaining style flags.
func convertText(w *Walker, n *model.Node) ([]*html.Node, error) {
	if n.Text == "" {
		return nil, nil
	}
	out, ok := w.r.math.Transform(n.Text)
	if !ok {
		out = one(text(n.Text))
	}
	if n.Format.Has(model.FormatCode) {
		out = one(wrap(atom.Code, out))
	}
	for _, f := range formatTags {
		if n.Format.Has(f.flag) {
			out = one(wrap(f.tag, out))
		}
	}
	return out, nil
}

func convertBlockNode(w *Walker, n *model.Node) ([]*html.Node, error) {
	return w.Block(n.Block)
}

func convertUpload(w *Walker, n *model.Node) ([]*html.Node, error) {
	img, ok := w.r.media.Resolve(n.Upload)
	if !ok {
		w.r.logger.Debug("upload not populated", zap.String("id", n.Upload.ID()))
		return nil, nil
	}
	return w.figure(img.URL, img.Alt, img.Width, img.Height, img.Caption)
}
