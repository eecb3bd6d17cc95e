// Package faq classifies FAQ-like pages and extracts question/answer pairs
// from headings, disclosure markup, Q/A text markers, and FAQ shortcodes.
package faq

import (
	"regexp"
	"strings"
)

// Title or slug fragments that mark a page as FAQ-like.
var indicatorPhrases = []string{
	"faq", "f.a.q", "frequently asked", "häufige fragen",
	"häufig gestellte", "fragen und antworten", "questions",
}

// Question words counted as question signals in body text, German and
// English.
var questionWords = []string{
	"wie", "was", "warum", "wann", "wer", "welche", "wo", "wieso",
	"how", "what", "why", "when", "who", "which", "where", "can i", "do i",
}

const questionSignalThreshold = 3

// IsFAQPage reports whether the page looks like an FAQ page: an indicator
// phrase in title or slug, or at least three question signals in the body.
func IsFAQPage(title, slug, body string) bool {
	titleLower := strings.ToLower(title)
	slugLower := strings.ToLower(slug)
	for _, phrase := range indicatorPhrases {
		if strings.Contains(titleLower, phrase) || strings.Contains(slugLower, phrase) {
			return true
		}
	}

	return QuestionSignals(body) >= questionSignalThreshold
}

// QuestionSignals counts question marks plus question-word occurrences in
// the given text.
func QuestionSignals(text string) int {
	lower := strings.ToLower(text)
	count := strings.Count(lower, "?")
	for _, word := range questionWords {
		count += countWordOccurrences(lower, word)
	}
	return count
}

var wordSplitRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func countWordOccurrences(lower, word string) int {
	// Multi-word entries match as substrings, single words as whole tokens
	if strings.Contains(word, " ") {
		return strings.Count(lower, word)
	}
	count := 0
	for _, token := range wordSplitRe.Split(lower, -1) {
		if token == word {
			count++
		}
	}
	return count
}
