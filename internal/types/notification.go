package types

import "encoding/json"

// NotificationEnvelope mirrors the top level of an S3 notification payload.
// Records are kept as raw JSON so each one can be validated independently.
type NotificationEnvelope struct {
	Records []json.RawMessage `json:"Records"`
}

// NotificationRecord is one validated object-created event.
type NotificationRecord struct {
	EventName string
	Bucket    string
	Key       string
	Size      int64
}

const (
	StatusProcessed = "processed"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
)

// ProcessingResult is the summary returned to the invoking platform.
type ProcessingResult struct {
	Status          string `json:"status"`
	ProcessedCount  int    `json:"processedCount"`
	RejectedCount   int    `json:"rejectedCount"`
	FailedEmitCount int    `json:"failedEmitCount,omitempty"`
}
