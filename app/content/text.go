// Package content provides the shared pure text and HTML helpers used by the
// extraction and scoring components.
package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	shortcodeRe  = regexp.MustCompile(`\[[^\[\]]*\]`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
)

// StripMarkup reduces an HTML fragment (possibly containing CMS shortcodes)
// to plain text with collapsed whitespace.
func StripMarkup(html string) string {
	text := html

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		doc.Find("script, style").Remove()
		text = doc.Text()
	} else {
		text = tagRe.ReplaceAllString(text, " ")
	}

	text = shortcodeRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// TrimWords shortens text to at most n words, appending an ellipsis when
// something was cut off.
func TrimWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "…"
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Sentences splits plain text on sentence-ending punctuation. Empty segments
// are dropped; order is preserved.
func Sentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}
