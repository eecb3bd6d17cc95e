package aisearch

import (
	"strings"
	"testing"
)

func TestAnalyze_EmptyBody(t *testing.T) {
	report := Analyze("Title", "", nil, false)

	if report.HasStructuredData {
		t.Error("Expected has_structured_data to be false")
	}
	if report.Summary != "" {
		t.Errorf("Expected empty summary, got '%s'", report.Summary)
	}
	if report.Snippet.Ready {
		t.Error("Expected snippet not ready for empty body")
	}
}

func TestCheckSnippet_DetectsListsAndTables(t *testing.T) {
	report := Analyze("Title", "<ul><li>First</li><li>Second</li></ul>", nil, false)

	if !report.Snippet.HasList {
		t.Error("Expected list to be detected")
	}
	if !report.Snippet.Ready {
		t.Error("Expected snippet readiness with a list present")
	}

	report = Analyze("Title", "<table><tr><td>Cell</td></tr></table>", nil, false)
	if !report.Snippet.HasTable {
		t.Error("Expected table to be detected")
	}
}

func TestCheckSnippet_DefinitionSentences(t *testing.T) {
	body := "<p>Espresso is a concentrated form of coffee brewed under pressure.</p>"

	report := Analyze("Title", body, nil, false)

	if len(report.Snippet.DefinitionSentences) == 0 {
		t.Fatal("Expected a definition sentence to be detected")
	}
	if !strings.Contains(report.Snippet.DefinitionSentences[0], "Espresso is") {
		t.Errorf("Unexpected definition: '%s'", report.Snippet.DefinitionSentences[0])
	}
}

func TestCheckQA_CandidateQuestions(t *testing.T) {
	body := `<h2>How does brewing work?</h2><p>Water passes through grounds.</p>
<h3>What grind size should I use?</h3><p>A fine grind works best.</p>`

	report := Analyze("Title", body, nil, false)

	if len(report.QA.CandidateQuestions) != 2 {
		t.Fatalf("Expected 2 candidate questions, got %d: %v",
			len(report.QA.CandidateQuestions), report.QA.CandidateQuestions)
	}
	if report.QA.CandidateQuestions[0] != "How does brewing work?" {
		t.Errorf("Unexpected first question: '%s'", report.QA.CandidateQuestions[0])
	}
}

func TestSummarize_PrefersKeywordSentences(t *testing.T) {
	plain := "Filler sentence about nothing. The espresso machine grinds beans. Another filler sentence here. More espresso talk in this espresso sentence."

	summary := Summarize(plain, []string{"espresso"})

	if !strings.HasPrefix(summary, "More espresso talk") {
		t.Errorf("Expected the sentence with the most keyword hits first, got '%s'", summary)
	}
}

func TestSummarize_CapsAtThreeSentences(t *testing.T) {
	plain := "One here. Two here. Three here. Four here. Five here."

	summary := Summarize(plain, nil)

	if got := strings.Count(summary, "."); got != 3 {
		t.Errorf("Expected 3 sentences in summary, got %d: '%s'", got, summary)
	}
}

func TestExtractEntities(t *testing.T) {
	plain := "The BeanMaster grinder from Kaffee Horizont GmbH ships from Berlin. The Grinder Pro is popular."

	entities := ExtractEntities(plain)

	if len(entities.Brands) == 0 || entities.Brands[0] != "BeanMaster" {
		t.Errorf("Expected 'BeanMaster' brand, got %v", entities.Brands)
	}
	if len(entities.Locations) != 1 || entities.Locations[0] != "Berlin" {
		t.Errorf("Expected ['Berlin'], got %v", entities.Locations)
	}
	if len(entities.ProductLines) != 1 || entities.ProductLines[0] != "Grinder Pro" {
		t.Errorf("Expected ['Grinder Pro'], got %v", entities.ProductLines)
	}
	if len(entities.Organizations) == 0 || !strings.Contains(entities.Organizations[0], "GmbH") {
		t.Errorf("Expected a GmbH organization, got %v", entities.Organizations)
	}
}

func TestExtractEntities_Deduplicates(t *testing.T) {
	plain := "BeanMaster BeanMaster BeanMaster"

	entities := ExtractEntities(plain)

	if len(entities.Brands) != 1 {
		t.Errorf("Expected 1 deduplicated brand, got %v", entities.Brands)
	}
}

func TestCheckConversational(t *testing.T) {
	report := Analyze("Title", "<p>How do I descale the machine? Easy.</p>", []string{"descaling"}, false)

	found := false
	for _, m := range report.Conversational.Matches {
		if m == "how do i" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'how do i' match, got %v", report.Conversational.Matches)
	}

	if len(report.Conversational.Suggestions) != 3 {
		t.Errorf("Expected 3 suggestions for one keyword, got %v", report.Conversational.Suggestions)
	}
	if report.Conversational.Suggestions[0] != "Was ist descaling?" {
		t.Errorf("Unexpected first suggestion: '%s'", report.Conversational.Suggestions[0])
	}
}
