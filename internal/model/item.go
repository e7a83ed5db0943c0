package model

// Item represents a raw content item entering the pipeline.
// Only Raw is required by the core transform; ID, Title and Source are
// provenance carried through for logging and persistence.
type Item struct {
	ID     string `json:"id"`
	Title  string `json:"title,omitempty"`
	Source string `json:"source,omitempty"`
	Raw    string `json:"raw"`
}
