package summarize

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

// Summarizer produces a short summary per processed item. When a remote
// provider is configured it is tried first; the deterministic local
// summary is the guaranteed fallback on any failure, so Summarize always
// returns usable prose.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a Summarizer from config. An unconfigured
// provider yields a purely local summarizer.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// Summarize produces a summary for the item.
func (s *Summarizer) Summarize(ctx context.Context, item model.Item, analysis model.Analysis) string {
	if s.provider != nil {
		resp, err := s.provider.Summarize(ctx, Request{Text: item.Raw})
		if err == nil && resp != nil && resp.Summary != "" {
			return resp.Summary
		}
		fmt.Fprintf(os.Stderr, "Warning: %s summarization failed, using local summary: %v\n", s.provider.Name(), err)
	}
	return LocalSummary(analysis)
}

// LocalSummary builds the offline summary: the first two claims (or the
// snippet when no claims were extracted) plus the detected key terms.
func LocalSummary(analysis model.Analysis) string {
	var excerpt string
	if len(analysis.Claims) > 0 {
		claims := analysis.Claims
		if len(claims) > 2 {
			claims = claims[:2]
		}
		excerpt = strings.Join(claims, " ")
	} else {
		excerpt = truncateRunes(analysis.Snippet, 200)
	}

	kw := "no key terms detected"
	if len(analysis.Keywords) > 0 {
		kw = strings.Join(analysis.Keywords, ", ")
	}

	return strings.TrimSpace(excerpt) + "\n\n(Key terms: " + kw + ")"
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
