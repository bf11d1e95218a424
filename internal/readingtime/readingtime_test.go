package readingtime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"enscribe/internal/model"
)

func TestFromWordCount(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{0, "1 min read"},
		{1, "1 min read"},
		{200, "1 min read"},
		{299, "1 min read"},
		{300, "2 min read"},
		{401, "2 min read"},
		{1000, "5 min read"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromWordCount(tt.words), "words=%d", tt.words)
	}
}

func TestPlainTextAndWordCount(t *testing.T) {
	doc := model.NewDocument(
		model.Element(model.TypeHeading, model.Text("Hello", 0)),
		model.Element(model.TypeParagraph,
			model.Text("one two", model.FormatBold),
			model.Element(model.TypeLink, model.Text("three", 0)),
		),
		model.BlockNode(model.CodeBlock{Code: "ignored words here"}),
	)

	assert.Equal(t, "Hello one two three", PlainText(doc))
	assert.Equal(t, 4, WordCount(doc))
	assert.Equal(t, "1 min read", ReadingTime(doc))
}

func TestEmptyDocuments(t *testing.T) {
	assert.Equal(t, "", PlainText(nil))
	assert.Equal(t, 0, WordCount(&model.Document{}))
	assert.Equal(t, "1 min read", ReadingTime(model.NewDocument()))
}

func TestLongDocument(t *testing.T) {
	text := strings.Repeat("word ", 401)
	doc := model.NewDocument(model.Element(model.TypeParagraph, model.Text(text, 0)))
	assert.Equal(t, 401, WordCount(doc))
	assert.Equal(t, "2 min read", ReadingTime(doc))
}

func TestFormatWordCount(t *testing.T) {
	assert.Equal(t, "1 word", FormatWordCount(1))
	assert.Equal(t, "12 words", FormatWordCount(12))
	assert.Equal(t, "1,234 words", FormatWordCount(1234))
}
