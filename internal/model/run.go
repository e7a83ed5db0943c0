package model

// RunEntry is the per-item line of a run log.
type RunEntry struct {
	ID      string   `json:"id"`
	Title   string   `json:"title,omitempty"`
	Score   *float64 `json:"score,omitempty"`
	Passed  bool     `json:"passed"`
	Summary string   `json:"summary,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// RunLog captures one full pipeline cycle, written to the output dir as
// run_<unix>.json.
type RunLog struct {
	Timestamp      string     `json:"timestamp"` // RFC3339 UTC start of the cycle
	Steps          []string   `json:"steps"`
	ProcessedItems int        `json:"processed_items"`
	Items          []RunEntry `json:"items"`
}

// SessionState is persisted between cycles (session_state.json) so
// long-running or resumed sessions can report cumulative progress.
type SessionState struct {
	IterationsRequested int    `json:"iterations_requested,omitempty"`
	Runs                int    `json:"runs,omitempty"`
	TotalProcessed      int    `json:"total_processed,omitempty"`
	LastRun             string `json:"last_run,omitempty"`
	LastTimestamp       string `json:"last_timestamp,omitempty"`
	LastProcessed       int    `json:"last_processed"`
	Modified            string `json:"modified,omitempty"`
}
