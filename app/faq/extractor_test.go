package faq

import (
	"strings"
	"testing"
)

func TestExtractFAQs_Markers(t *testing.T) {
	body := "Q: What is shipping? A: We ship in 24 hours. Q: Is it discrete? A: Yes."

	entries := ExtractFAQs(body)

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %v", len(entries), entries)
	}
	if entries[0].Question != "What is shipping?" {
		t.Errorf("Expected first question 'What is shipping?', got '%s'", entries[0].Question)
	}
	if entries[0].Answer != "We ship in 24 hours." {
		t.Errorf("Expected first answer 'We ship in 24 hours.', got '%s'", entries[0].Answer)
	}
	if entries[1].Question != "Is it discrete?" {
		t.Errorf("Expected second question 'Is it discrete?', got '%s'", entries[1].Question)
	}
	if entries[1].Answer != "Yes." {
		t.Errorf("Expected second answer 'Yes.', got '%s'", entries[1].Answer)
	}
}

func TestExtractFAQs_GermanMarkers(t *testing.T) {
	body := "Frage: Wie lange dauert der Versand? Antwort: In der Regel zwei Werktage."

	entries := ExtractFAQs(body)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %v", len(entries), entries)
	}
	if entries[0].Question != "Wie lange dauert der Versand?" {
		t.Errorf("Unexpected question: '%s'", entries[0].Question)
	}
}

func TestExtractFAQs_Headings(t *testing.T) {
	body := `<h2>How long does delivery take?</h2>
<p>Orders placed before noon are dispatched the same day and arrive within two working days.</p>
<h2>Not a question heading</h2>
<p>This paragraph does not belong to any question and answer pair at all.</p>`

	entries := ExtractFAQs(body)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %v", len(entries), entries)
	}
	if entries[0].Question != "How long does delivery take?" {
		t.Errorf("Unexpected question: '%s'", entries[0].Question)
	}
	if !strings.HasPrefix(entries[0].Answer, "Orders placed before noon") {
		t.Errorf("Unexpected answer: '%s'", entries[0].Answer)
	}
}

func TestExtractFAQs_HeadingsRequireMinimumLength(t *testing.T) {
	// Question shorter than the minimum length is skipped
	body := `<h2>Why?</h2><p>Because the answer text here is definitely long enough to qualify.</p>`

	entries := ExtractFAQs(body)

	if len(entries) != 0 {
		t.Errorf("Expected no entries for a too-short question, got %v", entries)
	}
}

func TestExtractFAQs_Accordions(t *testing.T) {
	body := `<details><summary>Can I return my order?</summary><p>Yes, within 30 days of delivery.</p></details>`

	entries := ExtractFAQs(body)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %v", len(entries), entries)
	}
	if entries[0].Question != "Can I return my order?" {
		t.Errorf("Unexpected question: '%s'", entries[0].Question)
	}
	if entries[0].Answer != "Yes, within 30 days of delivery." {
		t.Errorf("Unexpected answer: '%s'", entries[0].Answer)
	}
}

func TestExtractFAQs_Shortcodes(t *testing.T) {
	body := `[faq question="Is payment secure?" answer="All payments are encrypted."]`

	entries := ExtractFAQs(body)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %v", len(entries), entries)
	}
	if entries[0].Question != "Is payment secure?" {
		t.Errorf("Unexpected question: '%s'", entries[0].Question)
	}
	if entries[0].Answer != "All payments are encrypted." {
		t.Errorf("Unexpected answer: '%s'", entries[0].Answer)
	}
}

func TestExtractFAQs_DeduplicatesByQuestion(t *testing.T) {
	body := `<h2>How long does delivery take?</h2>
<p>Orders arrive within two working days after dispatch from our warehouse.</p>
[faq question="how long does delivery take?" answer="Two working days."]`

	entries := ExtractFAQs(body)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry after deduplication, got %d: %v", len(entries), entries)
	}
	// First occurrence wins
	if !strings.HasPrefix(entries[0].Answer, "Orders arrive") {
		t.Errorf("Expected the heading entry to win, got answer '%s'", entries[0].Answer)
	}
}

func TestExtractFAQs_Empty(t *testing.T) {
	entries := ExtractFAQs("<p>Plain product description without any questions.</p>")

	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %v", entries)
	}
}

func TestToSchema(t *testing.T) {
	entries := []Entry{{Question: "Is it safe?", Answer: "Yes."}}

	questions := ToSchema(entries)

	if len(questions) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(questions))
	}
	if questions[0]["@type"] != "Question" {
		t.Errorf("Expected @type Question, got %v", questions[0]["@type"])
	}
	answer, ok := questions[0]["acceptedAnswer"].(map[string]any)
	if !ok {
		t.Fatal("Expected acceptedAnswer map")
	}
	if answer["@type"] != "Answer" || answer["text"] != "Yes." {
		t.Errorf("Unexpected answer: %v", answer)
	}
}
