package model

// StoredData is the payload persisted per processed item. Raw is kept on
// first write and removed by Store.Compact so memory.json stays small.
type StoredData struct {
	Summary    string      `json:"summary"`
	Analysis   *Analysis   `json:"analysis,omitempty"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
	Raw        string      `json:"raw,omitempty"`
}

// Record is one entry in the memory store. Duplicate keys are resolved
// last-write-wins.
type Record struct {
	Key       string     `json:"key"`
	Timestamp int64      `json:"timestamp"` // Unix seconds of the write
	Data      StoredData `json:"data"`
}
