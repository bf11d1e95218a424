package render

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"enscribe/internal/mathtex"
	"enscribe/internal/model"
)

// renderMath typesets a display formula. Engine failures render a visible
// error box holding the message and the source; they never fail the page.
func renderMath(w *Walker, b model.MathBlock) ([]*html.Node, error) {
	if strings.TrimSpace(b.Formula) == "" {
		return nil, nil
	}
	markup, err := w.r.engine.Render(b.Formula, mathtex.Display)
	if err != nil {
		w.r.logger.Warn("display math failed", zap.String("formula", b.Formula), zap.Error(err))
		return one(appendChildren(el(atom.Div, "class", "math-block math-error", "role", "alert"),
			wrap(atom.P, one(text("Error rendering formula: "+err.Error())), "class", "math-error-message"),
			wrap(atom.Pre, one(text(b.Formula))),
		)), nil
	}
	return one(appendChildren(el(atom.Div, "class", "math-block not-prose"),
		wrap(atom.Div, one(raw(markup)), "class", "math-display"),
	)), nil
}
