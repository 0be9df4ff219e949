package targets

import (
	"encoding/json"
	"fmt"

	"github.com/jdwit/upload-notify/internal/types"
)

// StdoutTarget writes one JSON entry per line.
type StdoutTarget struct{}

func NewStdoutTarget() *StdoutTarget {
	return &StdoutTarget{}
}

func (c *StdoutTarget) Name() string {
	return TargetStdout
}

func (c *StdoutTarget) Emit(entry types.LogEntry) error {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error marshaling log entry to JSON: %w", err)
	}
	fmt.Println(string(jsonData))

	return nil
}

func (c *StdoutTarget) Flush() error {
	return nil
}
