// Package mathtex typesets TeX formulas as MathML and finds inline $...$
// spans in plain text.
package mathtex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wyatt915/treeblood"
)

// Mode selects inline or display (block, centered) typesetting.
type Mode int

const (
	Inline Mode = iota
	Display
)

func (m Mode) String() string {
	if m == Display {
		return "display"
	}
	return "inline"
}

// Engine turns a formula into markup. Implementations must be safe for
// concurrent use and must report malformed input as an error.
type Engine interface {
	Render(formula string, mode Mode) (string, error)
}

// ErrSyntax is wrapped by every error TeX returns.
var ErrSyntax = errors.New("tex syntax error")

// TeX converts TeX math into presentation MathML with treeblood. Macros,
// keyed by command name without the backslash, are expanded in every
// formula. The zero value is ready to use.
type TeX struct {
	Macros map[string]string
}

var _ Engine = TeX{}

func (t TeX) Render(formula string, mode Mode) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: %v", ErrSyntax, r)
		}
	}()

	// A Pitziil carries parse state, so each call gets its own.
	doc := treeblood.NewPitziil(t.Macros)
	doc.PrintOneLine = true
	if mode == Display {
		out, err = doc.DisplayStyle(formula)
	} else {
		out, err = doc.TextStyle(formula)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	// treeblood marks what it could not typeset with <merror> and carries on.
	if strings.Contains(out, "<merror") {
		return "", fmt.Errorf("%w: cannot typeset %q", ErrSyntax, formula)
	}
	return strings.TrimSpace(out), nil
}
