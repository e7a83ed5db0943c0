package analyze

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

// DefaultKeywords is the built-in science vocabulary checked for
// case-insensitive substring presence when no keywords are configured.
func DefaultKeywords() []string {
	return []string{
		"exoplanet",
		"orbital",
		"orbit",
		"radius",
		"mass",
		"transit",
		"spectra",
		"spectrum",
		"atmosphere",
		"cme",
		"solar",
		"habitability",
		"habitable",
		"apparent magnitude",
		"period",
		"days",
		"light-years",
		"spectroscopy",
	}
}

// Config holds the analyzer's tunables.
type Config struct {
	Keywords        []string // Vocabulary, matched case-insensitively; nil = DefaultKeywords
	MinClaimLength  int      // Minimum characters for a sentence to qualify as a claim
	MaxSnippetChars int      // Snippet length bound
}

// Analyzer turns raw text into a structured Analysis. It holds only
// immutable configuration, so a single Analyzer is safe for concurrent
// use across independent inputs.
type Analyzer struct {
	keywords        []string
	minClaimLength  int
	maxSnippetChars int
}

// New creates an Analyzer. The keyword vocabulary is lower-cased and
// copied at construction and never mutated afterwards.
func New(cfg Config) *Analyzer {
	src := cfg.Keywords
	if len(src) == 0 {
		src = DefaultKeywords()
	}
	keywords := make([]string, len(src))
	for i, k := range src {
		keywords[i] = strings.ToLower(k)
	}

	minClaim := cfg.MinClaimLength
	if minClaim <= 0 {
		minClaim = 30
	}
	maxSnippet := cfg.MaxSnippetChars
	if maxSnippet <= 0 {
		maxSnippet = 400
	}

	return &Analyzer{
		keywords:        keywords,
		minClaimLength:  minClaim,
		maxSnippetChars: maxSnippet,
	}
}

// Normalize collapses all whitespace runs (tabs, newlines, carriage
// returns included) to single spaces and trims the ends. Every analysis
// step works on normalized text, and Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// ParseNumberToken parses a numeric token. The false return is the
// skip-on-failure policy made explicit: callers drop the token and keep
// scanning, the analysis as a whole never fails.
func ParseNumberToken(tok string) (float64, bool) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AnalyzeText produces the Analysis for one block of text. It never
// fails: degenerate input yields zero counts and empty sequences.
func (a *Analyzer) AnalyzeText(raw string) model.Analysis {
	cleaned := Normalize(raw)
	sentences := splitSentences(cleaned)

	return model.Analysis{
		WordCount:     len(strings.Fields(cleaned)),
		SentenceCount: len(sentences),
		Numbers:       a.extractNumbers(cleaned),
		Measurements:  a.extractMeasurements(cleaned),
		Keywords:      a.findKeywords(cleaned),
		Claims:        a.findClaims(sentences),
		Snippet:       snippet(cleaned, a.maxSnippetChars),
	}
}

// AnalyzeItem analyzes a single item, carrying its provenance through.
func (a *Analyzer) AnalyzeItem(item model.Item) model.AnalyzedItem {
	return model.AnalyzedItem{
		OriginalID: item.ID,
		Title:      item.Title,
		Source:     item.Source,
		Analysis:   a.AnalyzeText(item.Raw),
	}
}

// AnalyzeItems analyzes a batch of items in order.
func (a *Analyzer) AnalyzeItems(items []model.Item) []model.AnalyzedItem {
	results := make([]model.AnalyzedItem, 0, len(items))
	for _, it := range items {
		results = append(results, a.AnalyzeItem(it))
	}
	return results
}

// extractNumbers returns every numeric literal in order of appearance,
// duplicates preserved. Unparsable matches are skipped, never fatal.
func (a *Analyzer) extractNumbers(text string) []float64 {
	var vals []float64
	for _, m := range numberRe.FindAllString(text, -1) {
		if v, ok := ParseNumberToken(m); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

// extractMeasurements scans for value+unit spans. A position matched here
// also contributes to Numbers; the overlap is intentional.
func (a *Analyzer) extractMeasurements(text string) []model.Measurement {
	var results []model.Measurement
	for _, m := range measurementRe.FindAllStringSubmatch(text, -1) {
		v, ok := ParseNumberToken(m[measurementValueIdx])
		if !ok {
			continue
		}
		unit := strings.TrimSpace(m[measurementUnitIdx])
		unit = strings.ReplaceAll(unit, "μ", "u")
		results = append(results, model.Measurement{
			Value: v,
			Unit:  unit,
			Raw:   m[0],
		})
	}
	return results
}

// findKeywords reports every configured vocabulary entry present as a
// case-insensitive substring, once each, in vocabulary order.
func (a *Analyzer) findKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range a.keywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// findClaims keeps sentences long enough to carry a fact that also
// contain a measurement span or a configured keyword.
func (a *Analyzer) findClaims(sentences []string) []string {
	var claims []string
	for _, s := range sentences {
		if utf8.RuneCountInString(s) < a.minClaimLength {
			continue
		}
		if measurementRe.MatchString(s) || a.containsKeyword(s) {
			claims = append(claims, s)
		}
	}
	return claims
}

func (a *Analyzer) containsKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range a.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// splitSentences splits normalized text where '.', '?' or '!' is
// immediately followed by whitespace. Known limitation, kept on purpose:
// abbreviations, decimals inside sentences and quoted punctuation all
// fool this splitter.
func splitSentences(text string) []string {
	if text == "" {
		return nil
	}

	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '?' || r == '!' {
			if i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\t') {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// snippet returns the first max runes of text, with a truncation marker
// when anything was cut.
func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
