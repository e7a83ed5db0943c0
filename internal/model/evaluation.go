package model

// Breakdown keys. Every key is present in Evaluation.Breakdown even when
// the factor contributed zero, so scored output diffs cleanly across runs.
const (
	FactorKeyword     = "keyword_score"
	FactorNumeric     = "numeric_score"
	FactorMeasurement = "measurement_score"
	FactorLength      = "length_score"
	FactorClaim       = "claim_score"
	FactorPenalty     = "penalty"
)

// Evaluation is the scored verdict for one analyzed item.
type Evaluation struct {
	OriginalID      string             `json:"original_id"`
	Score           float64            `json:"score"`            // Sum of factors, rounded to 3 decimals, may be negative
	PassedThreshold bool               `json:"passed_threshold"`
	Reasons         []string           `json:"reasons"`          // Fixed factor order: keyword, numeric, measurement, length, claim, penalty
	Breakdown       map[string]float64 `json:"breakdown"`
	RawAnalysis     *Analysis          `json:"raw_analysis,omitempty"` // Included for auditability
}

// Metrics summarizes a scored batch.
type Metrics struct {
	Count     int     `json:"count"`
	MeanScore float64 `json:"mean_score"`
	PassRate  float64 `json:"pass_rate"`
}
