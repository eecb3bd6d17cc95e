package aisearch

import (
	"strings"
)

// Conversational phrases typical for spoken or assistant-style queries,
// German and English.
var conversationalPhrases = []string{
	"wie kann ich", "was ist der beste", "wo finde ich", "lohnt es sich",
	"was kostet", "welches ist das beste",
	"how can i", "how do i", "what is the best", "where can i find",
	"is it worth", "how much does", "which is the best",
}

var questionTemplates = []string{
	"Was ist %s?",
	"Wie funktioniert %s?",
	"What is the best %s?",
}

const maxKeywordSuggestions = 3

func checkConversational(plain string, kws []string) Conversational {
	lower := strings.ToLower(plain)
	result := Conversational{}

	for _, phrase := range conversationalPhrases {
		if strings.Contains(lower, phrase) {
			result.Matches = append(result.Matches, phrase)
		}
	}

	n := len(kws)
	if n > maxKeywordSuggestions {
		n = maxKeywordSuggestions
	}
	for _, kw := range kws[:n] {
		for _, tpl := range questionTemplates {
			result.Suggestions = append(result.Suggestions, strings.Replace(tpl, "%s", kw, 1))
		}
	}

	return result
}
