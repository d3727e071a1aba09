package model

// Record is one corpus item: a stable unique identifier plus the derived
// text used for embedding (source fields concatenated in order,
// space-joined). Records are immutable once constructed.
type Record struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
