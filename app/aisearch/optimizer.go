// Package aisearch generates an advisory report about how well entity
// content serves answer-engine style queries: snippet readiness, Q&A
// presence, named entities, and conversational phrasing. All checks are pure
// text heuristics over the entity body.
package aisearch

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/schemapress/schemapress/app/content"
	"github.com/schemapress/schemapress/app/faq"
)

const (
	maxCandidateQuestions = 5
	maxSummarySentences   = 3
	qaSignalThreshold     = 3
)

// Analyze runs every sub-check. hasSchema reflects the previously stored
// "schema added" flag; this package never builds schema itself.
func Analyze(title, body string, kws []string, hasSchema bool) Report {
	plain := content.StripMarkup(body)

	return Report{
		HasStructuredData: hasSchema,
		Snippet:           checkSnippet(body, plain),
		QA:                checkQA(body, plain),
		Summary:           Summarize(plain, kws),
		Entities:          ExtractEntities(plain),
		Conversational:    checkConversational(plain, kws),
	}
}

var definitionRe = regexp.MustCompile(`(?m)([A-ZÄÖÜ][^.!?]{2,60})\s+(is|means|refers to|ist|bedeutet|bezeichnet)\s+[^.!?]{10,}`)

func checkSnippet(body, plain string) SnippetCheck {
	check := SnippetCheck{}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
		check.HasList = doc.Find("ul, ol").Length() > 0
		check.HasTable = doc.Find("table").Length() > 0
	}

	for _, m := range definitionRe.FindAllStringSubmatch(plain, -1) {
		check.DefinitionSentences = append(check.DefinitionSentences, strings.TrimSpace(m[0]))
		if len(check.DefinitionSentences) == maxSummarySentences {
			break
		}
	}

	check.Ready = check.HasList || check.HasTable || len(check.DefinitionSentences) > 0
	return check
}

func checkQA(body, plain string) QACheck {
	check := QACheck{
		QuestionSignals: faq.QuestionSignals(plain),
	}
	check.HasQAFormat = check.QuestionSignals >= qaSignalThreshold

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
		doc.Find("h2, h3, h4").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if strings.Contains(text, "?") {
				check.CandidateQuestions = append(check.CandidateQuestions, text)
			}
			return len(check.CandidateQuestions) < maxCandidateQuestions
		})
	}

	return check
}

// Summarize picks the sentences with the most keyword occurrences
// (case-insensitive substring match), keeping original order on ties, and
// joins the top three.
func Summarize(plain string, kws []string) string {
	sentences := content.Sentences(plain)
	if len(sentences) == 0 {
		return ""
	}

	type scored struct {
		sentence string
		score    int
	}
	ranked := make([]scored, 0, len(sentences))
	for _, s := range sentences {
		lower := strings.ToLower(s)
		score := 0
		for _, kw := range kws {
			score += strings.Count(lower, strings.ToLower(kw))
		}
		ranked = append(ranked, scored{sentence: s, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := len(ranked)
	if n > maxSummarySentences {
		n = maxSummarySentences
	}
	parts := make([]string, 0, n)
	for _, r := range ranked[:n] {
		parts = append(parts, r.sentence+".")
	}

	return strings.Join(parts, " ")
}
