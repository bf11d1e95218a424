package builder

import (
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"enscribe/internal/links"
)

// sourceDirKey holds the slash-separated directory, relative to the
// markdown root, of the page being converted.
var sourceDirKey = parser.NewContextKey()

// mdLinkTransformer rewrites links between markdown sources into site
// routes, so "posts/hello.md" becomes /posts/hello and "about.md" /about.
// Relative links resolve against the linking page's directory.
type mdLinkTransformer struct{}

func newMDLinkTransformer() parser.ASTTransformer {
	return &mdLinkTransformer{}
}

func (t *mdLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	dir, _ := pc.Get(sourceDirKey).(string)
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if route, ok := markdownRoute(string(link.Destination), dir); ok {
			link.Destination = []byte(route)
		}
		return ast.WalkContinue, nil
	})
}

// markdownRoute maps a link to a .md file onto the route of the page built
// from it. A relative link is taken from dir, an absolute one from the
// markdown root. The fragment is kept.
func markdownRoute(dest, dir string) (string, bool) {
	target, fragment, _ := strings.Cut(dest, "#")
	if !strings.HasSuffix(target, ".md") || strings.Contains(target, "://") {
		return "", false
	}
	target = strings.TrimSuffix(target, ".md")
	if !strings.HasPrefix(target, "/") {
		target = path.Join("/", dir, target)
	}
	clean := strings.TrimLeft(path.Clean(target), "/")

	collection, slug := "pages", clean
	if rest, ok := strings.CutPrefix(clean, links.PostsCollection+"/"); ok {
		collection, slug = links.PostsCollection, rest
	}
	if slug == "index" {
		slug = ""
	}
	route := links.CollectionPath(collection, slug)
	if fragment != "" {
		route += "#" + fragment
	}
	return route, true
}
