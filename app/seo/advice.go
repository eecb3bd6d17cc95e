package seo

import (
	"fmt"
	"math"
	"strings"

	"github.com/schemapress/schemapress/app/content"
)

// Baseline targets a well-optimized commerce page is measured against.
const (
	targetWordCount   = 300
	targetScore       = 75
	targetLinks       = 3
	minKeywordDensity = 0.5
	maxKeywordDensity = 3.0
)

// Comparison holds one metric next to its baseline target.
type Comparison struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
	Met    bool    `json:"met"`
}

// KeywordDensity returns the share of body words matching the keyword, in
// percent rounded to one decimal. Phrases count each full occurrence once.
func KeywordDensity(body, keyword string) float64 {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return 0
	}
	words := content.WordCount(body)
	if words == 0 {
		return 0
	}

	occurrences := strings.Count(strings.ToLower(body), keyword)
	return math.Round(float64(occurrences)/float64(words)*1000) / 10
}

// Suggestions derives human-readable improvement advice from a score
// breakdown. Checks already at full points produce nothing.
func Suggestions(in Input, b Breakdown) []string {
	suggestions := []string{}

	if b.ContentLength < 20 {
		suggestions = append(suggestions,
			fmt.Sprintf("Expand the body to at least %d words for full content-length points", targetWordCount))
	}
	if b.TitleLength < 15 {
		suggestions = append(suggestions, "Use a title between 30 and 60 characters")
	}
	if b.MetaLength < 15 {
		suggestions = append(suggestions, "Write a meta description between 120 and 160 characters")
	}
	if b.Image == 0 {
		suggestions = append(suggestions, "Add at least one image")
	}
	if b.InternalLinks < 10 {
		suggestions = append(suggestions,
			fmt.Sprintf("Link to at least %d other pages on the site", targetLinks))
	}
	if b.KeywordInTitle == 0 && in.PrimaryKeyword != "" {
		suggestions = append(suggestions,
			fmt.Sprintf("Include the primary keyword %q in the title", in.PrimaryKeyword))
	}
	if b.Readability < 10 {
		suggestions = append(suggestions, "Shorten sentences; aim for 15 words per sentence or fewer")
	}
	if b.Schema == 0 {
		suggestions = append(suggestions, "Generate valid structured data for this page")
	}

	return suggestions
}

// CompareBaseline measures the page against the fixed baseline targets used
// for competitor comparison.
func CompareBaseline(in Input, b Breakdown, density float64) []Comparison {
	words := float64(content.WordCount(in.Body))

	return []Comparison{
		{
			Metric: "word_count",
			Value:  words,
			Target: targetWordCount,
			Met:    words >= targetWordCount,
		},
		{
			Metric: "seo_score",
			Value:  float64(b.Total),
			Target: targetScore,
			Met:    b.Total >= targetScore,
		},
		{
			Metric: "internal_links",
			Value:  float64(in.InternalLinks),
			Target: targetLinks,
			Met:    in.InternalLinks >= targetLinks,
		},
		{
			Metric: "keyword_density",
			Value:  density,
			Target: minKeywordDensity,
			Met:    density >= minKeywordDensity && density <= maxKeywordDensity,
		},
	}
}
