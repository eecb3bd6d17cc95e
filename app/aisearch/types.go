package aisearch

// Report bundles the advisory sub-checks. Every field is informational; a
// fully negative report is still a valid result.
type Report struct {
	HasStructuredData bool           `json:"has_structured_data"`
	Snippet           SnippetCheck   `json:"featured_snippet"`
	QA                QACheck        `json:"qa_format"`
	Summary           string         `json:"ai_summary"`
	Entities          Entities       `json:"entities"`
	Conversational    Conversational `json:"conversational"`
}

type SnippetCheck struct {
	HasList             bool     `json:"has_list"`
	HasTable            bool     `json:"has_table"`
	DefinitionSentences []string `json:"definition_sentences"`
	Ready               bool     `json:"ready"`
}

type QACheck struct {
	QuestionSignals    int      `json:"question_signals"`
	HasQAFormat        bool     `json:"has_qa_format"`
	CandidateQuestions []string `json:"candidate_questions"`
}

type Entities struct {
	Brands        []string `json:"brands"`
	Locations     []string `json:"locations"`
	ProductLines  []string `json:"product_lines"`
	Organizations []string `json:"organizations"`
}

type Conversational struct {
	Matches     []string `json:"matches"`
	Suggestions []string `json:"suggestions"`
}
