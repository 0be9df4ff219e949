package notifyerrors

import "fmt"

// MalformedBatchError means the top-level payload could not be interpreted
// as a sequence of notification records. It is fatal to the invocation.
type MalformedBatchError struct {
	Reason string
}

func NewMalformedBatchError(reason string) error {
	return &MalformedBatchError{Reason: reason}
}

func (e *MalformedBatchError) Error() string {
	return fmt.Sprintf("malformed notification batch: %s", e.Reason)
}

// RecordExtractionError means one record in the batch lacks a required field
// or carries a wrong-typed value. The record is skipped, the batch continues.
type RecordExtractionError struct {
	Index  int
	Reason string
}

func NewRecordExtractionError(index int, reason string) error {
	return &RecordExtractionError{Index: index, Reason: reason}
}

func (e *RecordExtractionError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

// LogEmissionError means a target failed to accept a log entry. Emission is
// best-effort, so this never aborts processing.
type LogEmissionError struct {
	Target string
	Reason string
}

func NewLogEmissionError(target string, reason string) error {
	return &LogEmissionError{Target: target, Reason: reason}
}

func (e *LogEmissionError) Error() string {
	return fmt.Sprintf("target %s rejected log entry: %s", e.Target, e.Reason)
}
