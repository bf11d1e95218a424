package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"enscribe/internal/model"
)

func TestURL(t *testing.T) {
	b := URLBuilder{ServerURL: "https://cms.example.com/"}
	updated := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		updated time.Time
		want    string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "relative", raw: "/media/a.png", want: "https://cms.example.com/media/a.png"},
		{name: "absolute kept", raw: "https://cdn.example.com/a.png", want: "https://cdn.example.com/a.png"},
		{name: "cache tag", raw: "/media/a.png", updated: updated, want: "https://cms.example.com/media/a.png?2024-05-01T12%3A30%3A00.000Z"},
		{name: "absolute with cache tag", raw: "http://x/a.png", updated: updated, want: "http://x/a.png?2024-05-01T12%3A30%3A00.000Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.URL(tt.raw, tt.updated))
		})
	}
}

func TestResolve(t *testing.T) {
	b := URLBuilder{}
	_, ok := b.Resolve(model.Unresolved[model.Media]("abc"))
	assert.False(t, ok)

	img, ok := b.Resolve(model.Resolved(model.Media{URL: "/media/x.jpg", Alt: "x", Width: 10, Height: 20}))
	assert.True(t, ok)
	assert.Equal(t, Image{URL: "/media/x.jpg", Alt: "x", Width: 10, Height: 20}, img)
}
