package faq

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/schemapress/schemapress/app/content"
)

type Entry struct {
	Question string
	Answer   string
}

const (
	minQuestionLength = 10
	minAnswerLength   = 20
	maxAnswerWords    = 100
)

// ExtractFAQs runs the four independent extractors over an HTML body and
// deduplicates the concatenated result by question hash; the first
// occurrence wins. An empty result means the caller must not emit an
// FAQPage document.
func ExtractFAQs(body string) []Entry {
	var entries []Entry
	entries = append(entries, fromHeadings(body)...)
	entries = append(entries, fromAccordions(body)...)
	entries = append(entries, fromMarkers(content.StripMarkup(body))...)
	entries = append(entries, fromShortcodes(body)...)

	seen := make(map[string]struct{})
	deduped := make([]Entry, 0, len(entries))
	for _, e := range entries {
		hash := questionHash(e.Question)
		if _, ok := seen[hash]; ok {
			continue
		}
		seen[hash] = struct{}{}
		deduped = append(deduped, e)
	}

	return deduped
}

// ToSchema reshapes entries into the schema.org Question/Answer form used
// inside an FAQPage document.
func ToSchema(entries []Entry) []map[string]any {
	questions := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		questions = append(questions, map[string]any{
			"@type": "Question",
			"name":  e.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  e.Answer,
			},
		})
	}
	return questions
}

func questionHash(question string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(strings.ToLower(question))))
	return hex.EncodeToString(sum[:])
}

// fromHeadings pairs question-like headings with the nearest following text
// block.
func fromHeadings(body string) []Entry {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var entries []Entry
	doc.Find("h2, h3, h4").Each(func(_ int, heading *goquery.Selection) {
		question := strings.TrimSpace(heading.Text())
		if len(question) < minQuestionLength || !strings.Contains(question, "?") {
			return
		}

		answer := ""
		for next := heading.Next(); next.Length() > 0; next = next.Next() {
			if isHeadingNode(next) {
				break
			}
			text := strings.TrimSpace(next.Text())
			if len(text) >= minAnswerLength {
				answer = content.TrimWords(text, maxAnswerWords)
				break
			}
		}
		if answer == "" {
			return
		}

		entries = append(entries, Entry{Question: question, Answer: answer})
	})

	return entries
}

func isHeadingNode(s *goquery.Selection) bool {
	return s.Is("h1, h2, h3, h4, h5, h6")
}

// fromAccordions reads details/summary disclosure blocks: the summary is the
// question, the remaining block text the answer.
func fromAccordions(body string) []Entry {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var entries []Entry
	doc.Find("details").Each(func(_ int, details *goquery.Selection) {
		summary := details.Find("summary").First()
		question := strings.TrimSpace(summary.Text())
		if question == "" {
			return
		}

		clone := details.Clone()
		clone.Find("summary").Remove()
		answer := strings.TrimSpace(clone.Text())
		if answer == "" {
			return
		}

		entries = append(entries, Entry{
			Question: question,
			Answer:   content.TrimWords(answer, maxAnswerWords),
		})
	})

	return entries
}

var (
	questionMarkerRe = regexp.MustCompile(`(?i)(?:^|\s)(?:Q|Frage)\s*:\s*`)
	answerMarkerRe   = regexp.MustCompile(`(?i)(?:^|\s)(?:A|Antwort)\s*:\s*`)
)

// fromMarkers pairs explicit "Q:"/"A:" (or "Frage:"/"Antwort:") textual
// markers by alternation.
func fromMarkers(text string) []Entry {
	chunks := questionMarkerRe.Split(text, -1)
	if len(chunks) < 2 {
		return nil
	}

	var entries []Entry
	for _, chunk := range chunks[1:] {
		parts := answerMarkerRe.Split(chunk, 2)
		if len(parts) != 2 {
			continue
		}
		question := strings.TrimSpace(parts[0])
		answer := strings.TrimSpace(parts[1])
		if question == "" || answer == "" {
			continue
		}
		entries = append(entries, Entry{Question: question, Answer: answer})
	}

	return entries
}

var shortcodeRe = regexp.MustCompile(`\[faq[^\]]*\]`)
var shortcodeAttrRe = regexp.MustCompile(`(question|answer|q|a)\s*=\s*"([^"]*)"`)

// fromShortcodes reads bracketed FAQ shortcodes carrying explicit question
// and answer attributes.
func fromShortcodes(body string) []Entry {
	var entries []Entry
	for _, sc := range shortcodeRe.FindAllString(body, -1) {
		var question, answer string
		for _, m := range shortcodeAttrRe.FindAllStringSubmatch(sc, -1) {
			switch m[1] {
			case "question", "q":
				question = m[2]
			case "answer", "a":
				answer = m[2]
			}
		}
		if question == "" || answer == "" {
			continue
		}
		entries = append(entries, Entry{Question: question, Answer: answer})
	}
	return entries
}
