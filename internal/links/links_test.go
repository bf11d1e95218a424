package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enscribe/internal/model"
)

func TestResolveInternalHref(t *testing.T) {
	tests := []struct {
		name string
		ref  model.DocRef
		want string
	}{
		{
			name: "post",
			ref:  model.DocRef{RelationTo: "posts", Value: model.Resolved(model.LinkedDoc{Slug: "hello"})},
			want: "/posts/hello",
		},
		{
			name: "page",
			ref:  model.DocRef{RelationTo: "pages", Value: model.Resolved(model.LinkedDoc{Slug: "about"})},
			want: "/about",
		},
		{
			name: "slug is not normalized",
			ref:  model.DocRef{RelationTo: "posts", Value: model.Resolved(model.LinkedDoc{Slug: "caf%C3%A9 notes"})},
			want: "/posts/caf%C3%A9 notes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveInternalHref(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveInternalHrefUnpopulated(t *testing.T) {
	_, err := ResolveInternalHref(model.DocRef{RelationTo: "posts", Value: model.Unresolved[model.LinkedDoc]("raw-id-string")})
	require.ErrorIs(t, err, ErrUnpopulated)
	assert.Contains(t, err.Error(), "raw-id-string")
}

func TestHref(t *testing.T) {
	href, err := Href(model.LinkFields{LinkType: "custom", URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", href)

	_, err = Href(model.LinkFields{LinkType: "internal"})
	require.ErrorIs(t, err, ErrUnpopulated)

	href, err = CMSHref(model.CMSLink{Type: "reference", Reference: &model.DocRef{
		RelationTo: "pages", Value: model.Resolved(model.LinkedDoc{Slug: "contact"}),
	}})
	require.NoError(t, err)
	assert.Equal(t, "/contact", href)
}
