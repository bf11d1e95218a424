// Package render turns rich text documents into HTML node trees.
//
// A Renderer holds the converter registry and the collaborators blocks need
// (math engine, highlighter, media URLs). It keeps no state between calls
// and may be shared by goroutines. Each Render call walks the tree with a
// fresh Walker, pre-order and depth first, in children order.
package render

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"enscribe/internal/highlight"
	"enscribe/internal/mathtex"
	"enscribe/internal/media"
	"enscribe/internal/model"
)

// NodeConverter renders one node. Converters recurse through the walker.
type NodeConverter func(w *Walker, n *model.Node) ([]*html.Node, error)

// BlockConverter renders the fields of one embedded block.
type BlockConverter func(w *Walker, b model.Block) ([]*html.Node, error)

// DefaultMaxDepth bounds how deep the walker descends before it drops a
// subtree.
const DefaultMaxDepth = 64

// Renderer is the converter registry plus rendering configuration.
type Renderer struct {
	nodes  map[string]NodeConverter
	blocks map[model.BlockKind]BlockConverter

	engine      mathtex.Engine
	math        *mathtex.Transformer
	highlighter *highlight.Highlighter
	media       media.URLBuilder
	theme       string
	newID       func() string
	logger      *zap.Logger
	maxDepth    int
}

type Option func(*Renderer)

func WithMathEngine(e mathtex.Engine) Option {
	return func(r *Renderer) { r.engine = e }
}

func WithHighlighter(h *highlight.Highlighter) Option {
	return func(r *Renderer) { r.highlighter = h }
}

func WithMediaURL(b media.URLBuilder) Option {
	return func(r *Renderer) { r.media = b }
}

// WithDiagramTheme sets the theme diagrams are drawn with ("default",
// "dark", "forest", "neutral").
func WithDiagramTheme(theme string) Option {
	return func(r *Renderer) { r.theme = theme }
}

// WithIDGenerator replaces the source of unique element ids.
func WithIDGenerator(fn func() string) Option {
	return func(r *Renderer) { r.newID = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

func WithMaxDepth(n int) Option {
	return func(r *Renderer) { r.maxDepth = n }
}

// WithNodeConverter overrides or adds the converter for a node type.
func WithNodeConverter(typ string, fn NodeConverter) Option {
	return func(r *Renderer) { r.nodes[typ] = fn }
}

// WithBlockConverter overrides or adds the converter for a block kind.
func WithBlockConverter(kind model.BlockKind, fn BlockConverter) Option {
	return func(r *Renderer) { r.blocks[kind] = fn }
}

// New builds a renderer with the default converters.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		nodes:    defaultNodeConverters(),
		blocks:   defaultBlockConverters(),
		theme:    "default",
		newID:    uuid.NewString,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.engine == nil {
		r.engine = mathtex.TeX{}
	}
	if r.highlighter == nil {
		r.highlighter = highlight.New("", r.logger)
	}
	r.math = mathtex.NewTransformer(r.engine, r.logger)
	return r
}

// Render converts doc into a sequence of top-level nodes. Content problems
// degrade locally; only data contract violations, such as an internal link
// whose target was not populated, are returned as errors.
func (r *Renderer) Render(doc *model.Document) ([]*html.Node, error) {
	if doc == nil || doc.Root == nil {
		return nil, nil
	}
	w := r.walker()
	out, err := w.Node(doc.Root)
	if err != nil {
		return nil, fmt.Errorf("render rich text: %w", err)
	}
	return out, nil
}

// RenderHTML is Render followed by serialization.
func (r *Renderer) RenderHTML(doc *model.Document) (string, error) {
	nodes, err := r.Render(doc)
	if err != nil {
		return "", err
	}
	return Serialize(nodes)
}

// RenderBlocks renders a page layout.
func (r *Renderer) RenderBlocks(blocks []model.Block) ([]*html.Node, error) {
	w := r.walker()
	var out []*html.Node
	for _, b := range blocks {
		nodes, err := w.Block(b)
		if err != nil {
			return nil, fmt.Errorf("render %s block: %w", b.Kind(), err)
		}
		out = append(out, nodes...)
	}
	return out, nil
}

// Serialize writes nodes as HTML.
func Serialize(nodes []*html.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Math exposes the inline math transformer, for text outside rich text.
func (r *Renderer) Math() *mathtex.Transformer { return r.math }

// Highlighter exposes the code highlighter, for stylesheet generation.
func (r *Renderer) Highlighter() *highlight.Highlighter { return r.highlighter }

// Media exposes the media URL builder.
func (r *Renderer) Media() media.URLBuilder { return r.media }

func (r *Renderer) walker() *Walker {
	return &Walker{r: r, ids: map[string]int{}}
}

// Walker carries one render pass. It is not safe for concurrent use.
type Walker struct {
	r     *Renderer
	depth int
	ids   map[string]int
}

func (w *Walker) Renderer() *Renderer { return w.r }

func (w *Walker) Logger() *zap.Logger { return w.r.logger }

// Node renders n with the converter registered for its type. Unknown types
// render as nothing.
func (w *Walker) Node(n *model.Node) ([]*html.Node, error) {
	if n == nil {
		return nil, nil
	}
	if w.depth >= w.r.maxDepth {
		w.r.logger.Warn("rich text nested too deeply, subtree dropped",
			zap.String("type", n.Type), zap.Int("depth", w.depth))
		return nil, nil
	}
	conv, ok := w.r.nodes[n.Type]
	if !ok {
		w.r.logger.Debug("no converter for node type", zap.String("type", n.Type))
		return nil, nil
	}
	w.depth++
	defer func() { w.depth-- }()
	return conv(w, n)
}

// Children renders the children of n in order.
func (w *Walker) Children(n *model.Node) ([]*html.Node, error) {
	var out []*html.Node
	for _, c := range n.Children {
		nodes, err := w.Node(c)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

// Document renders a nested rich text field, such as banner content.
func (w *Walker) Document(doc *model.Document) ([]*html.Node, error) {
	if doc == nil || doc.Root == nil {
		return nil, nil
	}
	return w.Node(doc.Root)
}

// Block renders an embedded block. Unknown kinds render as nothing.
func (w *Walker) Block(b model.Block) ([]*html.Node, error) {
	if b == nil {
		return nil, nil
	}
	if _, unknown := b.(model.UnknownBlock); unknown {
		w.r.logger.Debug("unknown block type", zap.String("blockType", string(b.Kind())))
		return nil, nil
	}
	conv, ok := w.r.blocks[b.Kind()]
	if !ok {
		w.r.logger.Debug("no converter for block", zap.String("blockType", string(b.Kind())))
		return nil, nil
	}
	return conv(w, b)
}

// uniqueID derives a document-unique anchor from text.
func (w *Walker) uniqueID(text string) string {
	base := anchor(text)
	n := w.ids[base]
	w.ids[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
