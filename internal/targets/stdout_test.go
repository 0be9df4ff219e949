package targets

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/jdwit/upload-notify/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdoutTarget_Emit(t *testing.T) {
	r, w, _ := os.Pipe()
	originalStdout := os.Stdout
	os.Stdout = w
	defer func() {
		os.Stdout = originalStdout
		r.Close()
		w.Close()
	}()

	target := NewStdoutTarget()
	require.NoError(t, target.Emit(types.LogEntry{
		Bucket: "my-demo-bucket",
		Key:    "sample.txt",
		Size:   524,
		Event:  "ObjectCreated:Put",
	}))
	require.NoError(t, target.Emit(types.LogEntry{
		Bucket: "my-demo-bucket",
		Key:    "other.txt",
		Size:   0,
		Event:  "ObjectCreated:Copy",
	}))
	require.NoError(t, target.Flush())
	w.Close()

	output, _ := io.ReadAll(r)
	actualOutput := strings.TrimSpace(string(output))

	expectedOutput := strings.Join([]string{
		`{"bucket":"my-demo-bucket","key":"sample.txt","size":524,"event":"ObjectCreated:Put"}`,
		`{"bucket":"my-demo-bucket","key":"other.txt","size":0,"event":"ObjectCreated:Copy"}`,
	}, "\n")

	assert.Equal(t, expectedOutput, actualOutput)
}
