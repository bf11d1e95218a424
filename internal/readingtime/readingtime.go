// Package readingtime derives plain text, word counts and reading time
// estimates from rich text documents.
package readingtime

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"enscribe/internal/model"
)

// WordsPerMinute is the reading speed the estimate assumes.
const WordsPerMinute = 200

var printer = message.NewPrinter(language.English)

// PlainText joins every text leaf of doc, depth first, with single spaces.
func PlainText(doc *model.Document) string {
	if doc == nil || doc.Root == nil {
		return ""
	}
	var parts []string
	collect(doc.Root, &parts)
	return strings.Join(parts, " ")
}

func collect(n *model.Node, parts *[]string) {
	if n == nil {
		return
	}
	if n.Type == model.TypeText && n.Text != "" {
		*parts = append(*parts, n.Text)
	}
	for _, c := range n.Children {
		collect(c, parts)
	}
}

// CountWords counts whitespace separated tokens, treating non-breaking
// spaces as ordinary spaces.
func CountWords(text string) int {
	return len(strings.Fields(strings.ReplaceAll(text, "\u00a0", " ")))
}

// WordCount is the number of words in doc's text leaves.
func WordCount(doc *model.Document) int {
	return CountWords(PlainText(doc))
}

// Minutes is round(words / WordsPerMinute), never less than one.
func Minutes(words int) int {
	m := int(math.Floor(float64(words)/WordsPerMinute + 0.5))
	if m < 1 {
		return 1
	}
	return m
}

// FromWordCount formats the estimate as "N min read".
func FromWordCount(words int) string {
	return fmt.Sprintf("%d min read", Minutes(words))
}

// ReadingTime is FromWordCount(WordCount(doc)).
func ReadingTime(doc *model.Document) string {
	return FromWordCount(WordCount(doc))
}

// FormatWordCount renders a count with thousands separators, e.g. "1,234 words".
func FormatWordCount(words int) string {
	if words == 1 {
		return "1 word"
	}
	return printer.Sprintf("%d words", words)
}
