package render

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"enscribe/internal/model"
)

// diagramKinds are the header keywords known at build time. Others are
// still handed to the client runtime, which may know newer ones.
var diagramKinds = map[string]bool{
	"graph": true, "flowchart": true, "sequenceDiagram": true,
	"classDiagram": true, "classDiagram-v2": true,
	"stateDiagram": true, "stateDiagram-v2": true,
	"erDiagram": true, "journey": true, "gantt": true, "pie": true,
	"quadrantChart": true, "requirementDiagram": true, "gitGraph": true,
	"C4Context": true, "C4Container": true, "C4Component": true,
	"C4Dynamic": true, "C4Deployment": true, "mindmap": true,
	"timeline": true, "zenuml": true, "sankey-beta": true,
	"xychart-beta": true, "block-beta": true, "packet-beta": true,
	"kanban": true, "architecture-beta": true, "radar-beta": true,
}

// DiagramKind returns the diagram type keyword of src, skipping a leading
// front matter block, directives and comments. It fails only when there is
// no definition line at all.
func DiagramKind(src string) (string, error) {
	lines := strings.Split(src, "\n")
	i := 0
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "---" {
		for i = 1; i < len(lines) && strings.TrimSpace(lines[i]) != "---"; i++ {
		}
		if i == len(lines) {
			return "", fmt.Errorf("unterminated front matter")
		}
		i++
	}
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		return strings.TrimSuffix(strings.Fields(line)[0], ";"), nil
	}
	return "", fmt.Errorf("no diagram definition found")
}

// renderMermaid emits the diagram source for the client runtime, in the
// "rendering" state. Sources with no definition line go straight to the
// error state.
func renderMermaid(w *Walker, b model.MermaidBlock) ([]*html.Node, error) {
	src := strings.TrimSpace(b.Diagram)
	if src == "" {
		return nil, nil
	}
	kind, err := DiagramKind(src)
	if err != nil {
		w.r.logger.Warn("diagram rejected", zap.Error(err))
		return one(appendChildren(el(atom.Div, "class", "mermaid-block", "data-state", "error"),
			appendChildren(el(atom.Div, "class", "mermaid-error", "role", "alert"),
				wrap(atom.P, one(text("Error rendering diagram: "+err.Error()))),
				wrap(atom.Pre, one(text(src))),
			),
		)), nil
	}
	if !diagramKinds[kind] {
		w.r.logger.Debug("unfamiliar diagram type, leaving it to the client", zap.String("kind", kind))
	}
	return one(appendChildren(
		el(atom.Div, "class", "mermaid-block", "data-state", "rendering", "data-theme", w.r.theme),
		wrap(atom.Div, one(text("Rendering diagram...")), "class", "mermaid-status"),
		wrap(atom.Pre, one(text(src)), "class", "mermaid", "id", "mermaid-"+w.r.newID()),
	)), nil
}
