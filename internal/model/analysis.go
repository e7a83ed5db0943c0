package model

// Measurement is a numeric value paired with an adjacent unit-like token.
// Units are pattern-matched, not validated against any unit registry.
type Measurement struct {
	Value float64 `json:"value"` // Parsed numeric part
	Unit  string  `json:"unit"`  // Captured unit text, micro-sign normalized to "u"
	Raw   string  `json:"raw"`   // Full matched span
}

// Analysis is the structured record produced by the analyzer for one
// block of text. It is a pure function of (text, analyzer config):
// created per call, immutable afterwards, owned by the caller.
type Analysis struct {
	WordCount     int           `json:"word_count"`
	SentenceCount int           `json:"sentence_count"`
	Numbers       []float64     `json:"numbers_found"`      // Order of appearance, duplicates kept
	Measurements  []Measurement `json:"measurements"`       // Order of appearance, duplicates kept
	Keywords      []string      `json:"keywords_detected"`  // Vocabulary order, deduplicated
	Claims        []string      `json:"claims"`             // Sentence order
	Snippet       string        `json:"snippet"`            // Length-bounded prefix of normalized text
}

// AnalyzedItem wraps an Analysis with the provenance of the item it was
// derived from, for downstream evaluation and persistence.
type AnalyzedItem struct {
	OriginalID string   `json:"original_id"`
	Title      string   `json:"title,omitempty"`
	Source     string   `json:"source,omitempty"`
	Analysis   Analysis `json:"analysis"`
}
