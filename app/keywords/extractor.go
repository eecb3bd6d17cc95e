// Package keywords extracts ranked keywords and short phrases from entity
// text. All functions are pure; callers decide whether to cache results as
// entity metadata.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/schemapress/schemapress/app/content"
)

const (
	maxSingleWords = 20
	maxResults     = 15
	minWordLength  = 4
)

var (
	wordRe      = regexp.MustCompile(`[\p{L}\p{N}]+`)
	twoWordRe   = regexp.MustCompile(`\p{L}+ \p{L}+`)
	threeWordRe = regexp.MustCompile(`\p{L}+ \p{L}+ \p{L}+`)
)

// Extract tokenizes the given text (markup and shortcodes are stripped
// first) into ranked single words and 2-3 word phrases. Stop words and short
// tokens are dropped; the merged result is deduplicated and capped.
// Empty input yields an empty list.
func Extract(text string) []string {
	plain := strings.ToLower(content.StripMarkup(text))
	if plain == "" {
		return []string{}
	}

	singles := rankedWords(plain)
	phrases := rankedPhrases(plain)

	merged := make([]string, 0, len(singles)+len(phrases))
	seen := make(map[string]struct{})
	for _, kw := range append(singles, phrases...) {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		merged = append(merged, kw)
		if len(merged) == maxResults {
			break
		}
	}

	return merged
}

// Primary returns the highest-ranked keyword, or "" when none exists.
func Primary(text string) string {
	kws := Extract(text)
	if len(kws) == 0 {
		return ""
	}
	return kws[0]
}

func rankedWords(plain string) []string {
	counts := make(map[string]int)
	var order []string

	for _, token := range wordRe.FindAllString(plain, -1) {
		if utf8.RuneCountInString(token) < minWordLength || isStopword(token) {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxSingleWords {
		order = order[:maxSingleWords]
	}
	return order
}

func rankedPhrases(plain string) []string {
	counts := make(map[string]int)
	var order []string

	collect := func(re *regexp.Regexp) {
		for _, phrase := range re.FindAllString(plain, -1) {
			if phraseHasStopword(phrase) || phraseRepeatsWord(phrase) {
				continue
			}
			if counts[phrase] == 0 {
				order = append(order, phrase)
			}
			counts[phrase]++
		}
	}
	collect(twoWordRe)
	collect(threeWordRe)

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	return order
}

func phraseHasStopword(phrase string) bool {
	for _, word := range strings.Fields(phrase) {
		if isStopword(word) || utf8.RuneCountInString(word) < minWordLength {
			return true
		}
	}
	return false
}

// phraseRepeatsWord drops degenerate phrases built from a word following
// itself, which a repeated term in the source text otherwise produces.
func phraseRepeatsWord(phrase string) bool {
	words := strings.Fields(phrase)
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] {
			return true
		}
	}
	return false
}
