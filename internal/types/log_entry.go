package types

// LogEntry is the fixed-shape record emitted for each valid notification.
type LogEntry struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Size   int64  `json:"size"`
	Event  string `json:"event"`
}
