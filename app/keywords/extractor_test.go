package keywords

import (
	"strings"
	"testing"
)

func TestExtract_EmptyInput(t *testing.T) {
	result := Extract("")

	if len(result) != 0 {
		t.Errorf("Expected no keywords for empty input, got %v", result)
	}
}

func TestExtract_StopwordsAndShortWordsOnly(t *testing.T) {
	result := Extract("the and with from this that a in on it")

	if len(result) != 0 {
		t.Errorf("Expected no keywords when input is only stop words and short words, got %v", result)
	}
}

func TestExtract_RanksByFrequency(t *testing.T) {
	text := "espresso machine espresso grinder espresso portafilter grinder"

	result := Extract(text)

	if len(result) == 0 {
		t.Fatal("Expected keywords, got none")
	}
	if result[0] != "espresso" {
		t.Errorf("Expected 'espresso' as top keyword, got '%s'", result[0])
	}
	if result[1] != "grinder" {
		t.Errorf("Expected 'grinder' as second keyword, got '%s'", result[1])
	}
}

func TestExtract_Lowercases(t *testing.T) {
	result := Extract("Espresso ESPRESSO espresso")

	if len(result) != 1 {
		t.Fatalf("Expected 1 keyword, got %d: %v", len(result), result)
	}
	if result[0] != "espresso" {
		t.Errorf("Expected lowercased keyword, got '%s'", result[0])
	}
}

func TestExtract_RepeatedWordPhrasesDropped(t *testing.T) {
	result := Extract("coffee coffee grinder beans")

	for _, kw := range result {
		words := strings.Fields(kw)
		for i := 1; i < len(words); i++ {
			if words[i] == words[i-1] {
				t.Errorf("Expected no repeated-word phrases, got %q", kw)
			}
		}
	}
}

func TestExtract_ShortWordLengthCountsRunes(t *testing.T) {
	result := Extract("süß süß süß")

	if len(result) != 0 {
		t.Errorf("Expected three-rune word dropped, got %v", result)
	}
}

func TestExtract_StripsMarkupAndShortcodes(t *testing.T) {
	result := Extract(`<p>Espresso [gallery id="3"] machines</p>`)

	for _, kw := range result {
		if strings.Contains(kw, "gallery") {
			t.Errorf("Shortcode content leaked into keywords: %v", result)
		}
	}
}

func TestExtract_CapsResults(t *testing.T) {
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf",
		"hotel", "india", "juliett", "kilo", "lima", "mike", "november",
		"oscar", "papa", "quebec", "romeo", "sierra", "tango", "uniform",
		"victor", "whiskey", "xray", "yankee", "zulu",
	}
	result := Extract(strings.Join(words, ". "))

	if len(result) > maxResults {
		t.Errorf("Expected at most %d keywords, got %d", maxResults, len(result))
	}
}

func TestExtract_PhrasesDropStopwords(t *testing.T) {
	result := Extract("coffee with milk")

	for _, kw := range result {
		if strings.Contains(kw, " ") {
			t.Errorf("Expected no phrases containing stop words, got '%s'", kw)
		}
	}
}

func TestExtract_KeepsCleanPhrases(t *testing.T) {
	text := "premium coffee beans premium coffee beans premium coffee beans"

	result := Extract(text)

	found := false
	for _, kw := range result {
		if kw == "premium coffee" || kw == "premium coffee beans" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a multi-word phrase in results, got %v", result)
	}
}

func TestPrimary(t *testing.T) {
	if got := Primary("espresso espresso machine"); got != "espresso" {
		t.Errorf("Expected 'espresso', got '%s'", got)
	}
	if got := Primary(""); got != "" {
		t.Errorf("Expected empty primary keyword, got '%s'", got)
	}
}
