package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Node types understood by the renderer. Anything else decodes fine and
// renders as nothing.
const (
	TypeRoot           = "root"
	TypeParagraph      = "paragraph"
	TypeHeading        = "heading"
	TypeList           = "list"
	TypeListItem       = "listitem"
	TypeQuote          = "quote"
	TypeLink           = "link"
	TypeAutoLink       = "autolink"
	TypeLineBreak      = "linebreak"
	TypeTab            = "tab"
	TypeText           = "text"
	TypeHorizontalRule = "horizontalrule"
	TypeBlock          = "block"
	TypeUpload         = "upload"
)

// Format is the inline style bitmask of a text node. Flags are independent;
// always test with Has, never compare the whole value.
type Format int

const (
	FormatCode Format = 1 << iota
	FormatBold
	FormatItalic
	FormatUnderline
	FormatStrikethrough
	FormatSubscript
	FormatSuperscript
)

func (f Format) Has(flag Format) bool { return f&flag != 0 }

// Document is a rich text field: {"root": Node}.
type Document struct {
	Root *Node `json:"root"`
}

// Node is one element of a rich text tree. Type selects which of the
// remaining fields are meaningful.
type Node struct {
	Type     string
	Children []*Node

	// text
	Text   string
	Format Format

	// element attributes
	Align    string
	Indent   int
	Tag      string
	ListType string
	Start    int
	Value    int
	Checked  *bool

	// upload
	RelationTo string
	Upload     Ref[Media]

	// link / autolink
	Link *LinkFields

	// block
	Block Block
}

// Error reports a decode failure together with the JSON path it happened at.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("richtext %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("richtext %s at %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func atPath(segment string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		path := segment
		if de.Path != "" {
			if strings.HasPrefix(de.Path, "[") {
				path += de.Path
			} else {
				path += "." + de.Path
			}
		}
		return &Error{Op: de.Op, Path: path, Err: de.Err}
	}
	return &Error{Op: "decode", Path: segment, Err: err}
}

type wireNode struct {
	Type       string            `json:"type"`
	Children   []json.RawMessage `json:"children"`
	Text       string            `json:"text"`
	Format     json.RawMessage   `json:"format"`
	Code       bool              `json:"code"`
	Indent     int               `json:"indent"`
	Tag        string            `json:"tag"`
	ListType   string            `json:"listType"`
	Start      int               `json:"start"`
	Value      json.RawMessage   `json:"value"`
	Checked    *bool             `json:"checked"`
	RelationTo string            `json:"relationTo"`
	Fields     json.RawMessage   `json:"fields"`
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var w wireNode
	if err := json.Unmarshal(b, &w); err != nil {
		return &Error{Op: "decode", Err: err}
	}
	*n = Node{
		Type:       w.Type,
		Text:       w.Text,
		Indent:     w.Indent,
		Tag:        w.Tag,
		ListType:   w.ListType,
		Start:      w.Start,
		Checked:    w.Checked,
		RelationTo: w.RelationTo,
	}

	if f := bytes.TrimSpace(w.Format); len(f) > 0 && !bytes.Equal(f, []byte("null")) {
		if f[0] == '"' {
			if err := json.Unmarshal(f, &n.Align); err != nil {
				return atPath("format", err)
			}
		} else {
			var bits int
			if err := json.Unmarshal(f, &bits); err != nil {
				return atPath("format", err)
			}
			n.Format = Format(bits)
		}
	}
	if w.Code {
		n.Format |= FormatCode
	}

	if v := bytes.TrimSpace(w.Value); len(v) > 0 {
		if w.Type == TypeUpload {
			if err := json.Unmarshal(v, &n.Upload); err != nil {
				return atPath("value", err)
			}
		} else if v[0] != '{' && v[0] != '"' && !bytes.Equal(v, []byte("null")) {
			if err := json.Unmarshal(v, &n.Value); err != nil {
				return atPath("value", err)
			}
		}
	}

	if f := bytes.TrimSpace(w.Fields); len(f) > 0 && !bytes.Equal(f, []byte("null")) {
		switch w.Type {
		case TypeBlock:
			blk, err := DecodeBlock(f)
			if err != nil {
				return atPath("fields", err)
			}
			n.Block = blk
		case TypeLink, TypeAutoLink:
			var lf LinkFields
			if err := json.Unmarshal(f, &lf); err != nil {
				return atPath("fields", err)
			}
			n.Link = &lf
		}
	}

	if len(w.Children) > 0 {
		n.Children = make([]*Node, 0, len(w.Children))
		for i, raw := range w.Children {
			child := &Node{}
			if err := child.UnmarshalJSON(raw); err != nil {
				return atPath(fmt.Sprintf("children[%d]", i), err)
			}
			n.Children = append(n.Children, child)
		}
	}
	return nil
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var w struct {
		Root json.RawMessage `json:"root"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return &Error{Op: "decode", Err: err}
	}
	d.Root = nil
	if len(w.Root) == 0 || bytes.Equal(bytes.TrimSpace(w.Root), []byte("null")) {
		return nil
	}
	root := &Node{}
	if err := root.UnmarshalJSON(w.Root); err != nil {
		return atPath("root", err)
	}
	d.Root = root
	return nil
}

// ParseDocument decodes a rich text field.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// IsEmpty reports whether the document has nothing to render.
func (d *Document) IsEmpty() bool {
	return d == nil || d.Root == nil || len(d.Root.Children) == 0
}

// NewDocument wraps children in a root node.
func NewDocument(children ...*Node) *Document {
	return &Document{Root: &Node{Type: TypeRoot, Children: children}}
}

// Element builds a container node.
func Element(typ string, children ...*Node) *Node {
	return &Node{Type: typ, Children: children}
}

// Text builds a text leaf.
func Text(s string, f Format) *Node {
	return &Node{Type: TypeText, Text: s, Format: f}
}

// BlockNode embeds b in a block node.
func BlockNode(b Block) *Node {
	return &Node{Type: TypeBlock, Block: b}
}
