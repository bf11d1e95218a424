package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ComputeBaseHref calculates the relative path to the site root
// so that CSS/JS links work correctly for pages at any depth.
// For example, a page at posts/a/index.html would get a BaseHref of "../../".
func ComputeBaseHref(relPath string) string {
	dir := filepath.Dir(relPath)
	if dir == "." {
		return ""
	}
	depth := strings.Count(dir, string(os.PathSeparator)) + 1
	return strings.Repeat("../", depth)
}

// OutputPath maps a site route to the file that serves it:
// "/" -> index.html, "/posts/a" -> posts/a/index.html.
func OutputPath(route string) string {
	route = strings.Trim(route, "/")
	if route == "" {
		return "index.html"
	}
	return filepath.Join(filepath.FromSlash(route), "index.html")
}

// Initials returns the first two letters of name, upper-cased, for avatar
// placeholders.
func Initials(name string) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}
