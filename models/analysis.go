package models

// Analysis is the structured result of summarizing one transcript.
// The JSON tags match the object the language model is instructed to
// return; which optional sections are populated depends on the style.
type Analysis struct {
	FormattedText string   `json:"formatted_text"`
	Summary       string   `json:"summary"`
	Tags          []string `json:"tags"`
	KeyPoints     []string `json:"key_points"`

	// Style-specific sections.
	ResearchImplications  []string `json:"research_implications,omitempty"`
	CodeSnippets          []string `json:"code_snippets,omitempty"`
	TechnicalConcepts     []string `json:"technical_concepts,omitempty"`
	MarketInsights        []string `json:"market_insights,omitempty"`
	StrategicImplications []string `json:"strategic_implications,omitempty"`
}
