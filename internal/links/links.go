// Package links maps CMS document references to site paths.
package links

import (
	"errors"
	"fmt"

	"enscribe/internal/model"
)

// PostsCollection is the only collection served under its own prefix.
const PostsCollection = "posts"

// ErrUnpopulated is returned when an internal link points at a document that
// was fetched without expanding the relation. It signals a query that asked
// for too little depth and must not be papered over.
var ErrUnpopulated = errors.New("link target was not populated")

// CollectionPath returns the canonical path of a document: /posts/{slug} for
// posts and /{slug} for everything else. The slug is used as is.
func CollectionPath(collection, slug string) string {
	if collection == PostsCollection {
		return "/posts/" + slug
	}
	return "/" + slug
}

// ResolveInternalHref computes the href of an internal document reference.
func ResolveInternalHref(ref model.DocRef) (string, error) {
	doc, ok := ref.Value.Value()
	if !ok {
		return "", fmt.Errorf("%w: %s %q", ErrUnpopulated, ref.RelationTo, ref.Value.ID())
	}
	return CollectionPath(ref.RelationTo, doc.Slug), nil
}

// Href resolves a rich text link node's fields: custom links keep their URL,
// internal links go through ResolveInternalHref.
func Href(f model.LinkFields) (string, error) {
	if f.LinkType == "internal" {
		if f.Doc == nil {
			return "", fmt.Errorf("%w: internal link without a document", ErrUnpopulated)
		}
		return ResolveInternalHref(*f.Doc)
	}
	return f.URL, nil
}

// CMSHref resolves a button/column link group.
func CMSHref(l model.CMSLink) (string, error) {
	if l.Type == "reference" {
		if l.Reference == nil {
			return "", fmt.Errorf("%w: reference link without a document", ErrUnpopulated)
		}
		return ResolveInternalHref(*l.Reference)
	}
	return l.URL, nil
}
