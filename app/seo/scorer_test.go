package seo

import (
	"strings"
	"testing"
)

func TestScore_EmptyInput(t *testing.T) {
	b := Score(Input{})

	if b.Total != 0 {
		t.Errorf("Expected total 0 for empty input, got %d", b.Total)
	}
}

func TestScore_ContentLengthBands(t *testing.T) {
	long := strings.Repeat("word ", 300)
	medium := strings.Repeat("word ", 150)
	short := strings.Repeat("word ", 100)
	tiny := strings.Repeat("word ", 50)

	if b := Score(Input{Body: long}); b.ContentLength != 20 {
		t.Errorf("Expected 20 points for 300 words, got %d", b.ContentLength)
	}
	if b := Score(Input{Body: medium}); b.ContentLength != 15 {
		t.Errorf("Expected 15 points for 150 words, got %d", b.ContentLength)
	}
	if b := Score(Input{Body: short}); b.ContentLength != 10 {
		t.Errorf("Expected 10 points for 100 words, got %d", b.ContentLength)
	}
	if b := Score(Input{Body: tiny}); b.ContentLength != 0 {
		t.Errorf("Expected 0 points for 50 words, got %d", b.ContentLength)
	}
}

func TestScore_TitleLengthBands(t *testing.T) {
	ideal := strings.Repeat("t", 45)
	acceptable := strings.Repeat("t", 25)
	tooLong := strings.Repeat("t", 80)

	if b := Score(Input{Title: ideal}); b.TitleLength != 15 {
		t.Errorf("Expected 15 points for 45-char title, got %d", b.TitleLength)
	}
	if b := Score(Input{Title: acceptable}); b.TitleLength != 10 {
		t.Errorf("Expected 10 points for 25-char title, got %d", b.TitleLength)
	}
	if b := Score(Input{Title: tooLong}); b.TitleLength != 0 {
		t.Errorf("Expected 0 points for 80-char title, got %d", b.TitleLength)
	}
}

func TestScore_MetaDescriptionBands(t *testing.T) {
	ideal := strings.Repeat("m", 140)
	acceptable := strings.Repeat("m", 105)
	missing := ""

	if b := Score(Input{MetaDescription: ideal}); b.MetaLength != 15 {
		t.Errorf("Expected 15 points for 140-char description, got %d", b.MetaLength)
	}
	if b := Score(Input{MetaDescription: acceptable}); b.MetaLength != 10 {
		t.Errorf("Expected 10 points for 105-char description, got %d", b.MetaLength)
	}
	if b := Score(Input{MetaDescription: missing}); b.MetaLength != 0 {
		t.Errorf("Expected 0 points for missing description, got %d", b.MetaLength)
	}
}

func TestScore_InternalLinkBands(t *testing.T) {
	if b := Score(Input{InternalLinks: 5}); b.InternalLinks != 10 {
		t.Errorf("Expected 10 points for 5 links, got %d", b.InternalLinks)
	}
	if b := Score(Input{InternalLinks: 1}); b.InternalLinks != 5 {
		t.Errorf("Expected 5 points for 1 link, got %d", b.InternalLinks)
	}
	if b := Score(Input{InternalLinks: 0}); b.InternalLinks != 0 {
		t.Errorf("Expected 0 points for no links, got %d", b.InternalLinks)
	}
}

func TestScore_KeywordInTitle(t *testing.T) {
	b := Score(Input{Title: "Premium Espresso Machine", PrimaryKeyword: "espresso"})
	if b.KeywordInTitle != 10 {
		t.Errorf("Expected 10 points for keyword in title, got %d", b.KeywordInTitle)
	}

	b = Score(Input{Title: "Premium Grinder", PrimaryKeyword: "espresso"})
	if b.KeywordInTitle != 0 {
		t.Errorf("Expected 0 points for keyword missing from title, got %d", b.KeywordInTitle)
	}
}

func TestScore_SchemaAndImage(t *testing.T) {
	b := Score(Input{HasImage: true, SchemaValid: true})

	if b.Image != 10 {
		t.Errorf("Expected 10 points for image, got %d", b.Image)
	}
	if b.Schema != 10 {
		t.Errorf("Expected 10 points for valid markup, got %d", b.Schema)
	}
}

func TestScore_ReadabilityContributionCapped(t *testing.T) {
	// Short sentences give readability 100, contributing at most 10 points
	body := "One two three. Four five six. Seven eight nine."

	b := Score(Input{Body: body})

	if b.Readability != 10 {
		t.Errorf("Expected readability contribution of 10, got %d", b.Readability)
	}
}

func TestReadability_StepFunction(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		expected int
	}{
		{"no sentences", "", 0},
		{"short sentences", "One two three. Four five six.", 100},
		{"eighteen words", strings.Repeat("word ", 18) + ".", 80},
		{"twenty-three words", strings.Repeat("word ", 23) + ".", 60},
		{"twenty-eight words", strings.Repeat("word ", 28) + ".", 40},
		{"very long sentence", strings.Repeat("word ", 40) + ".", 20},
	}

	for _, tc := range cases {
		if got := Readability(tc.body); got != tc.expected {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.expected, got)
		}
	}
}
