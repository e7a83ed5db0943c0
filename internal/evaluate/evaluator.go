package evaluate

import (
	"fmt"
	"math"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

// Heuristic parameters. Tunable, but deliberately not part of the public
// configuration surface: the weights and threshold are.
const (
	numericCountForBonus       = 2   // strictly more numbers than this awards the numeric bonus
	minWordCountForLengthBonus = 20  // word count at or above this awards the length bonus
	shortContentWordCount      = 6   // below this the short-content penalty applies
	shortContentPenalty        = -2.0
	measurementPointsEach      = 0.5
	measurementCap             = 3.0
	claimCap                   = 6.0
)

// DefaultWeights returns the standard factor weights.
func DefaultWeights() model.Weights {
	return model.Weights{
		Keyword:      2.0,
		NumericBonus: 3.0,
		LengthBonus:  1.0,
		ClaimBonus:   1.5,
	}
}

// Evaluator scores analyzer output with transparent, additive heuristics.
// It holds only immutable configuration and is safe for concurrent use.
type Evaluator struct {
	threshold float64
	weights   model.Weights
}

// New creates an Evaluator. Zero-valued weights fall back to defaults so
// a partially specified config file keeps the standard behavior.
func New(threshold float64, weights model.Weights) *Evaluator {
	def := DefaultWeights()
	if weights.Keyword == 0 {
		weights.Keyword = def.Keyword
	}
	if weights.NumericBonus == 0 {
		weights.NumericBonus = def.NumericBonus
	}
	if weights.LengthBonus == 0 {
		weights.LengthBonus = def.LengthBonus
	}
	if weights.ClaimBonus == 0 {
		weights.ClaimBonus = def.ClaimBonus
	}
	return &Evaluator{
		threshold: threshold,
		weights:   weights,
	}
}

// Score evaluates a single analyzed item. Six factors are applied in a
// fixed order (keyword, numeric, measurement, length, claim, penalty);
// the reasons list follows that order so scored output diffs cleanly.
// Score never fails, including on an all-zero analysis.
func (e *Evaluator) Score(item model.AnalyzedItem) model.Evaluation {
	analysis := item.Analysis
	wc := analysis.WordCount

	var reasons []string
	breakdown := make(map[string]float64, 6)

	// Keyword factor: linear in keywords found.
	keywordPts := float64(len(analysis.Keywords)) * e.weights.Keyword
	breakdown[model.FactorKeyword] = keywordPts
	if len(analysis.Keywords) > 0 {
		reasons = append(reasons, fmt.Sprintf("Keywords detected: %d (+%.1f)", len(analysis.Keywords), keywordPts))
	}

	// Numeric factor: flat bonus above the density threshold, no partial credit.
	numericPts := 0.0
	if len(analysis.Numbers) > numericCountForBonus {
		numericPts = e.weights.NumericBonus
		reasons = append(reasons, fmt.Sprintf("Numeric density high (%d numbers) (+%.1f)", len(analysis.Numbers), numericPts))
	}
	breakdown[model.FactorNumeric] = numericPts

	// Measurement factor: linear with a hard cap.
	measurementPts := 0.0
	if len(analysis.Measurements) > 0 {
		measurementPts = math.Min(float64(len(analysis.Measurements))*measurementPointsEach, measurementCap)
		reasons = append(reasons, fmt.Sprintf("Measurements found: %d (+%.1f)", len(analysis.Measurements), measurementPts))
	}
	breakdown[model.FactorMeasurement] = measurementPts

	// Length factor: the only factor that always reports, bonus or not.
	lengthPts := 0.0
	if wc >= minWordCountForLengthBonus {
		lengthPts = e.weights.LengthBonus
		reasons = append(reasons, fmt.Sprintf("Content length sufficient (%d words) (+%.1f)", wc, lengthPts))
	} else {
		reasons = append(reasons, fmt.Sprintf("Short content (%d words) (no length bonus)", wc))
	}
	breakdown[model.FactorLength] = lengthPts

	// Claim factor: linear with a hard cap.
	claimPts := math.Min(float64(len(analysis.Claims))*e.weights.ClaimBonus, claimCap)
	if claimPts > 0 {
		reasons = append(reasons, fmt.Sprintf("Claims detected: %d (+%.1f)", len(analysis.Claims), claimPts))
	}
	breakdown[model.FactorClaim] = claimPts

	// Penalty for very short or noisy content. No floor is applied to the
	// total: a negative score is reported as-is.
	penalty := 0.0
	if wc < shortContentWordCount {
		penalty = shortContentPenalty
		reasons = append(reasons, fmt.Sprintf("Very short content; penalized (%.1f)", penalty))
	}
	breakdown[model.FactorPenalty] = penalty

	total := round3(keywordPts + numericPts + measurementPts + lengthPts + claimPts + penalty)

	return model.Evaluation{
		OriginalID:      item.OriginalID,
		Score:           total,
		PassedThreshold: total >= e.threshold,
		Reasons:         reasons,
		Breakdown:       breakdown,
		RawAnalysis:     &analysis,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
