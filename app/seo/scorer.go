// Package seo computes the additive 0-100 content score. The point tables
// are fixed constants; recomputation overwrites the previously stored score.
package seo

import (
	"strings"

	"github.com/schemapress/schemapress/app/content"
)

// Input carries everything the scorer looks at. Body is plain text; callers
// strip markup first.
type Input struct {
	Title           string
	Body            string
	MetaDescription string
	PrimaryKeyword  string
	HasImage        bool
	InternalLinks   int
	SchemaValid     bool
}

// Breakdown lists the points awarded per check; Total is their sum.
type Breakdown struct {
	ContentLength  int `json:"content_length"`
	TitleLength    int `json:"title_length"`
	MetaLength     int `json:"meta_length"`
	Image          int `json:"image"`
	InternalLinks  int `json:"internal_links"`
	KeywordInTitle int `json:"keyword_in_title"`
	Readability    int `json:"readability"`
	Schema         int `json:"schema"`
	Total          int `json:"total"`
}

func Score(in Input) Breakdown {
	b := Breakdown{}

	switch words := content.WordCount(in.Body); {
	case words >= 300:
		b.ContentLength = 20
	case words >= 150:
		b.ContentLength = 15
	case words >= 100:
		b.ContentLength = 10
	}

	switch length := len(in.Title); {
	case length >= 30 && length <= 60:
		b.TitleLength = 15
	case length >= 20 && length <= 70:
		b.TitleLength = 10
	}

	switch length := len(in.MetaDescription); {
	case length >= 120 && length <= 160:
		b.MetaLength = 15
	case length >= 100 && length <= 180:
		b.MetaLength = 10
	}

	if in.HasImage {
		b.Image = 10
	}

	switch {
	case in.InternalLinks >= 3:
		b.InternalLinks = 10
	case in.InternalLinks >= 1:
		b.InternalLinks = 5
	}

	if in.PrimaryKeyword != "" &&
		strings.Contains(strings.ToLower(in.Title), strings.ToLower(in.PrimaryKeyword)) {
		b.KeywordInTitle = 10
	}

	b.Readability = Readability(in.Body) / 10
	if b.Readability > 10 {
		b.Readability = 10
	}

	if in.SchemaValid {
		b.Schema = 10
	}

	b.Total = b.ContentLength + b.TitleLength + b.MetaLength + b.Image +
		b.InternalLinks + b.KeywordInTitle + b.Readability + b.Schema

	return b
}

// Readability maps the average words-per-sentence through a fixed step
// function. Zero sentences yields 0.
func Readability(body string) int {
	sentences := content.Sentences(body)
	if len(sentences) == 0 {
		return 0
	}

	avg := float64(content.WordCount(body)) / float64(len(sentences))
	switch {
	case avg <= 15:
		return 100
	case avg <= 20:
		return 80
	case avg <= 25:
		return 60
	case avg <= 30:
		return 40
	default:
		return 20
	}
}
