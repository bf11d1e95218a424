package builder

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var mathMLElements = []string{
	"math", "semantics", "annotation", "mrow", "mi", "mn", "mo", "ms", "mtext", "mspace",
	"msup", "msub", "msubsup", "mfrac", "msqrt", "mroot", "munder", "mover", "munderover",
	"mtable", "mtr", "mtd", "mlabeledtr", "mstyle", "menclose", "mphantom", "mpadded",
	"mmultiscripts", "mprescripts", "none",
}

var mathMLAttrs = []string{
	"xmlns", "display", "encoding", "mathvariant", "mathcolor", "stretchy", "largeop",
	"movablelimits", "accent", "accentunder", "linethickness", "displaystyle", "scriptlevel",
	"width", "notation", "minsize", "maxsize", "fence", "separator", "lspace", "rspace",
	"columnalign", "rowalign", "columnlines", "rowlines", "rowspacing", "columnspacing",
	"rowspan", "columnspan", "form", "mathsize", "symmetric", "linebreak", "height", "depth",
	"voffset",
}

// newSanitizer extends the UGC policy with the markup rich text blocks emit:
// MathML, class names, data attributes, collapsible banners, copy buttons
// and ARIA state.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\- ]+$`)).Globally()
	p.AllowDataAttributes()
	p.AllowAttrs("role", "aria-hidden", "aria-checked", "aria-label").Globally()

	p.AllowElements("details", "summary", "figure", "figcaption", "section", "article")
	p.AllowAttrs("open").OnElements("details")
	p.AllowElements("button")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^button$`)).OnElements("button")
	p.AllowAttrs("loading", "decoding").OnElements("img")
	p.AllowAttrs("scope", "colspan").OnElements("th", "td")
	p.AllowAttrs("start").OnElements("ol")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")

	// MathML token and layout elements mostly carry no attributes at all.
	p.AllowNoAttrs().OnElements(mathMLElements...)
	p.AllowAttrs(mathMLAttrs...).OnElements(mathMLElements...)
	return p
}
