package targets

import "github.com/jdwit/upload-notify/internal/types"

// MemoryTarget buffers entries in memory so they can be inspected after an
// invocation. Selectable via the "memory" target name.
type MemoryTarget struct {
	entries []types.LogEntry

	// EmitErr, when set, is returned by every Emit call.
	EmitErr error
	// FlushErr, when set, is returned by Flush.
	FlushErr error
}

func NewMemoryTarget() *MemoryTarget {
	return &MemoryTarget{}
}

func (m *MemoryTarget) Name() string {
	return TargetMemory
}

func (m *MemoryTarget) Emit(entry types.LogEntry) error {
	if m.EmitErr != nil {
		return m.EmitErr
	}
	m.entries = append(m.entries, entry)

	return nil
}

func (m *MemoryTarget) Flush() error {
	return m.FlushErr
}

func (m *MemoryTarget) Entries() []types.LogEntry {
	return m.entries
}
