package evaluate

import (
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

// EvaluateBatch scores a batch of analyzed items in order.
func (e *Evaluator) EvaluateBatch(items []model.AnalyzedItem) []model.Evaluation {
	scored := make([]model.Evaluation, 0, len(items))
	for _, it := range items {
		scored = append(scored, e.Score(it))
	}
	return scored
}

// FilterPassed returns only the evaluations at or above the threshold.
func FilterPassed(scored []model.Evaluation) []model.Evaluation {
	var passed []model.Evaluation
	for _, s := range scored {
		if s.PassedThreshold {
			passed = append(passed, s)
		}
	}
	return passed
}

// SummaryMetrics computes mean score and pass rate for a scored batch,
// both rounded to 3 decimals.
func SummaryMetrics(scored []model.Evaluation) model.Metrics {
	if len(scored) == 0 {
		return model.Metrics{}
	}

	total := 0.0
	passed := 0
	for _, s := range scored {
		total += s.Score
		if s.PassedThreshold {
			passed++
		}
	}

	return model.Metrics{
		Count:     len(scored),
		MeanScore: round3(total / float64(len(scored))),
		PassRate:  round3(float64(passed) / float64(len(scored))),
	}
}
