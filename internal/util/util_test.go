package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBaseHref(t *testing.T) {
	assert.Equal(t, "", ComputeBaseHref("index.html"))
	assert.Equal(t, "../", ComputeBaseHref(filepath.Join("about", "index.html")))
	assert.Equal(t, "../../", ComputeBaseHref(filepath.Join("posts", "a", "index.html")))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "index.html", OutputPath("/"))
	assert.Equal(t, "index.html", OutputPath(""))
	assert.Equal(t, filepath.Join("posts", "a", "index.html"), OutputPath("/posts/a"))
	assert.Equal(t, filepath.Join("posts", "page", "2", "index.html"), OutputPath("/posts/page/2/"))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "BO", Initials("bob"))
	assert.Equal(t, "A", Initials(" a "))
	assert.Equal(t, "ÉL", Initials("élan"))
	assert.Equal(t, "", Initials(""))
}
