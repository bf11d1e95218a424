package model

import (
	"encoding/json"
	"fmt"
)

// BlockKind is the blockType tag of an embedded block.
type BlockKind string

const (
	KindBanner       BlockKind = "banner"
	KindCallout      BlockKind = "callout"
	KindCode         BlockKind = "code"
	KindMath         BlockKind = "math"
	KindMermaid      BlockKind = "mermaid"
	KindTable        BlockKind = "table"
	KindMedia        BlockKind = "mediaBlock"
	KindCallToAction BlockKind = "cta"
	KindRelatedPosts BlockKind = "relatedPosts"
	KindContent      BlockKind = "content"
	KindHomeLayout   BlockKind = "homeLayout"
)

// Block is the closed set of block field shapes. UnknownBlock is the
// fallback arm for kinds this renderer does not know about.
type Block interface {
	Kind() BlockKind
	block()
}

type BannerStyle string

const (
	StyleNote      BannerStyle = "note"
	StyleWarning   BannerStyle = "warning"
	StyleTip       BannerStyle = "tip"
	StyleImportant BannerStyle = "important"
	StyleQuestion  BannerStyle = "question"
	StyleSuccess   BannerStyle = "success"
	StyleError     BannerStyle = "error"
	StyleInfo      BannerStyle = "info"
)

type BannerBlock struct {
	ID      string      `json:"id,omitempty"`
	Style   BannerStyle `json:"style"`
	Title   string      `json:"title,omitempty"`
	Content *Document   `json:"content,omitempty"`
}

type CodeBlock struct {
	ID       string `json:"id,omitempty"`
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
	Title    string `json:"title,omitempty"`
}

type MathBlock struct {
	ID      string `json:"id,omitempty"`
	Formula string `json:"formula"`
}

type MermaidBlock struct {
	ID      string `json:"id,omitempty"`
	Diagram string `json:"diagram"`
}

type TableHeader struct {
	Header string `json:"header"`
}

type TableCell struct {
	Content string `json:"content"`
}

type TableRow struct {
	Cells []TableCell `json:"cells"`
}

type TableBlock struct {
	ID      string        `json:"id,omitempty"`
	Headers []TableHeader `json:"headers"`
	Rows    []TableRow    `json:"rows"`
}

type MediaBlock struct {
	ID             string     `json:"id,omitempty"`
	Media          Ref[Media] `json:"media"`
	StaticFallback string     `json:"staticFallback,omitempty"`
}

type CTALink struct {
	Link CMSLink `json:"link"`
}

type CallToActionBlock struct {
	ID       string    `json:"id,omitempty"`
	RichText *Document `json:"richText,omitempty"`
	Links    []CTALink `json:"links,omitempty"`
}

type RelatedPostsBlock struct {
	ID           string      `json:"id,omitempty"`
	IntroContent *Document   `json:"introContent,omitempty"`
	Docs         []Ref[Post] `json:"docs,omitempty"`
}

type Column struct {
	Size       string    `json:"size,omitempty"`
	RichText   *Document `json:"richText,omitempty"`
	EnableLink bool      `json:"enableLink,omitempty"`
	Link       CMSLink   `json:"link"`
}

type ContentBlock struct {
	ID      string   `json:"id,omitempty"`
	Columns []Column `json:"columns,omitempty"`
}

type HomeIntro struct {
	Eyebrow        string `json:"eyebrow,omitempty"`
	TitlePrefix    string `json:"titlePrefix,omitempty"`
	TitleHighlight string `json:"titleHighlight,omitempty"`
	TitleSuffix    string `json:"titleSuffix,omitempty"`
	Description    string `json:"description,omitempty"`
}

type FriendLink struct {
	Avatar Ref[Media] `json:"avatar"`
	Name   string     `json:"name"`
	URL    string     `json:"url"`
	NewTab bool       `json:"newTab"`
}

type Friends struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Links       []FriendLink `json:"links,omitempty"`
}

type HomeLayoutBlock struct {
	ID      string    `json:"id,omitempty"`
	Intro   HomeIntro `json:"intro"`
	Friends Friends   `json:"friends"`
}

// UnknownBlock keeps the tag of a block kind that has no decoder.
type UnknownBlock struct {
	BlockType string
	Raw       json.RawMessage
}

func (BannerBlock) Kind() BlockKind       { return KindBanner }
func (CodeBlock) Kind() BlockKind         { return KindCode }
func (MathBlock) Kind() BlockKind         { return KindMath }
func (MermaidBlock) Kind() BlockKind      { return KindMermaid }
func (TableBlock) Kind() BlockKind        { return KindTable }
func (MediaBlock) Kind() BlockKind        { return KindMedia }
func (CallToActionBlock) Kind() BlockKind { return KindCallToAction }
func (RelatedPostsBlock) Kind() BlockKind { return KindRelatedPosts }
func (ContentBlock) Kind() BlockKind      { return KindContent }
func (HomeLayoutBlock) Kind() BlockKind   { return KindHomeLayout }
func (b UnknownBlock) Kind() BlockKind    { return BlockKind(b.BlockType) }

func (BannerBlock) block()       {}
func (CodeBlock) block()         {}
func (MathBlock) block()         {}
func (MermaidBlock) block()      {}
func (TableBlock) block()        {}
func (MediaBlock) block()        {}
func (CallToActionBlock) block() {}
func (RelatedPostsBlock) block() {}
func (ContentBlock) block()      {}
func (HomeLayoutBlock) block()   {}
func (UnknownBlock) block()      {}

// legacyBanner covers both the retired callout block and banners saved
// before the "type" field was renamed to "style".
type legacyBanner struct {
	ID      string      `json:"id,omitempty"`
	Style   BannerStyle `json:"style"`
	Type    BannerStyle `json:"type"`
	Title   string      `json:"title"`
	Content *Document   `json:"content"`
}

// DecodeBlock decodes a block fields bag, selecting the shape by blockType.
// Legacy callout blocks come back as banners.
func DecodeBlock(raw json.RawMessage) (Block, error) {
	var head struct {
		BlockType string `json:"blockType"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	switch BlockKind(head.BlockType) {
	case KindBanner, KindCallout:
		var lb legacyBanner
		if err := json.Unmarshal(raw, &lb); err != nil {
			return nil, fmt.Errorf("%s block: %w", head.BlockType, err)
		}
		style := lb.Style
		if style == "" {
			style = lb.Type
		}
		if style == "" && BlockKind(head.BlockType) == KindCallout {
			style = StyleNote
		}
		return BannerBlock{ID: lb.ID, Style: style, Title: lb.Title, Content: lb.Content}, nil
	case KindCode:
		return decodeAs[CodeBlock](raw)
	case KindMath:
		return decodeAs[MathBlock](raw)
	case KindMermaid:
		return decodeAs[MermaidBlock](raw)
	case KindTable:
		return decodeAs[TableBlock](raw)
	case KindMedia:
		return decodeAs[MediaBlock](raw)
	case KindCallToAction:
		return decodeAs[CallToActionBlock](raw)
	case KindRelatedPosts:
		return decodeAs[RelatedPostsBlock](raw)
	case KindContent:
		return decodeAs[ContentBlock](raw)
	case KindHomeLayout:
		return decodeAs[HomeLayoutBlock](raw)
	default:
		return UnknownBlock{BlockType: head.BlockType, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

func decodeAs[T Block](raw json.RawMessage) (Block, error) {
	var b T
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%s block: %w", b.Kind(), err)
	}
	return b, nil
}

// Blocks is a page layout: a list of block field bags.
type Blocks []Block

func (bs *Blocks) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return err
	}
	out := make(Blocks, 0, len(raws))
	for i, raw := range raws {
		blk, err := DecodeBlock(raw)
		if err != nil {
			return atPath(fmt.Sprintf("[%d]", i), err)
		}
		out = append(out, blk)
	}
	*bs = out
	return nil
}

// Find returns the first block of the given kind.
func (bs Blocks) Find(kind BlockKind) (Block, bool) {
	for _, b := range bs {
		if b.Kind() == kind {
			return b, true
		}
	}
	return nil, false
}
