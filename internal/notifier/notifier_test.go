package notifier

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	notifyerrors "github.com/jdwit/upload-notify/internal/errors"
	"github.com/jdwit/upload-notify/internal/targets"
	"github.com/jdwit/upload-notify/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(tgs ...targets.Target) *Notifier {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(tgs, logger.WithField("component", "notifier"))
}

func record(event, bucket, key string, size int64) map[string]any {
	return map[string]any{
		"eventName": event,
		"s3": map[string]any{
			"bucket": map[string]any{"name": bucket},
			"object": map[string]any{"key": key, "size": size},
		},
	}
}

func payload(t *testing.T, records ...map[string]any) json.RawMessage {
	t.Helper()
	if records == nil {
		records = []map[string]any{}
	}
	data, err := json.Marshal(map[string]any{"Records": records})
	require.NoError(t, err)

	return data
}

func TestHandleValidBatch(t *testing.T) {
	mem := targets.NewMemoryTarget()
	n := newTestNotifier(mem)

	result, err := n.Handle(context.Background(), payload(t,
		record("ObjectCreated:Put", "my-demo-bucket", "sample.txt", 524),
	))

	require.NoError(t, err)
	assert.Equal(t, types.ProcessingResult{
		Status:         types.StatusProcessed,
		ProcessedCount: 1,
		RejectedCount:  0,
	}, result)

	require.Len(t, mem.Entries(), 1)
	assert.Equal(t, types.LogEntry{
		Bucket: "my-demo-bucket",
		Key:    "sample.txt",
		Size:   524,
		Event:  "ObjectCreated:Put",
	}, mem.Entries()[0])
}

func TestHandleEmptyBatch(t *testing.T) {
	mem := targets.NewMemoryTarget()
	n := newTestNotifier(mem)

	result, err := n.Handle(context.Background(), payload(t))

	require.NoError(t, err)
	assert.Equal(t, types.StatusProcessed, result.Status)
	assert.Equal(t, 0, result.ProcessedCount)
	assert.Equal(t, 0, result.RejectedCount)
	assert.Empty(t, mem.Entries())
}

func TestHandleAllRecordsInvalid(t *testing.T) {
	mem := targets.NewMemoryTarget()
	n := newTestNotifier(mem)

	// missing s3.object.size
	result, err := n.Handle(context.Background(), json.RawMessage(
		`{"Records":[{"eventName":"ObjectCreated:Put","s3":{"bucket":{"name":"b"},"object":{"key":"k"}}}]}`,
	))

	require.NoError(t, err)
	assert.Equal(t, types.StatusFailed, result.Status)
	assert.Equal(t, 0, result.ProcessedCount)
	assert.Equal(t, 1, result.RejectedCount)
	assert.Empty(t, mem.Entries())
}

func TestHandleMalformedBatch(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "Top-level string", payload: `"not-a-sequence"`},
		{name: "Top-level array", payload: `[1,2,3]`},
		{name: "Missing Records key", payload: `{}`},
		{name: "Null Records", payload: `{"Records":null}`},
		{name: "Records not a sequence", payload: `{"Records":"x"}`},
		{name: "Not JSON at all", payload: `{{{`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mem := targets.NewMemoryTarget()
			n := newTestNotifier(mem)

			result, err := n.Handle(context.Background(), json.RawMessage(test.payload))

			require.Error(t, err)
			var malformed *notifyerrors.MalformedBatchError
			assert.ErrorAs(t, err, &malformed)
			assert.Equal(t, types.StatusFailed, result.Status)
			assert.Equal(t, 0, result.ProcessedCount)
			assert.Equal(t, 0, result.RejectedCount)
			assert.Empty(t, mem.Entries())
		})
	}
}

func TestHandleMixedBatch(t *testing.T) {
	mem := targets.NewMemoryTarget()
	n := newTestNotifier(mem)

	data := payload(t,
		record("ObjectCreated:Put", "b1", "first.txt", 1),
		map[string]any{"eventName": "ObjectCreated:Put"}, // missing s3
		record("ObjectCreated:Copy", "b2", "second.txt", 2),
	)

	result, err := n.Handle(context.Background(), data)

	require.NoError(t, err)
	assert.Equal(t, types.StatusPartial, result.Status)
	assert.Equal(t, 2, result.ProcessedCount)
	assert.Equal(t, 1, result.RejectedCount)
	assert.Equal(t, 3, result.ProcessedCount+result.RejectedCount)

	// valid records come out in input order
	require.Len(t, mem.Entries(), 2)
	assert.Equal(t, "first.txt", mem.Entries()[0].Key)
	assert.Equal(t, "second.txt", mem.Entries()[1].Key)
}

func TestHandleDuplicateRecords(t *testing.T) {
	mem := targets.NewMemoryTarget()
	n := newTestNotifier(mem)

	data := payload(t,
		record("ObjectCreated:Put", "b", "same.txt", 10),
		record("ObjectCreated:Put", "b", "same.txt", 10),
	)

	result, err := n.Handle(context.Background(), data)

	require.NoError(t, err)
	assert.Equal(t, types.StatusProcessed, result.Status)
	assert.Equal(t, 2, result.ProcessedCount)
	assert.Len(t, mem.Entries(), 2)
}

func TestHandleEmissionFailure(t *testing.T) {
	failing := targets.NewMemoryTarget()
	failing.EmitErr = assert.AnError
	mem := targets.NewMemoryTarget()
	n := newTestNotifier(failing, mem)

	data := payload(t,
		record("ObjectCreated:Put", "b", "a.txt", 1),
		record("ObjectCreated:Put", "b", "b.txt", 2),
	)

	result, err := n.Handle(context.Background(), data)

	require.NoError(t, err)
	// emission is best-effort: the records still count as processed
	assert.Equal(t, types.StatusProcessed, result.Status)
	assert.Equal(t, 2, result.ProcessedCount)
	assert.Equal(t, 0, result.RejectedCount)
	assert.Equal(t, 2, result.FailedEmitCount)
	assert.Len(t, mem.Entries(), 2)
}

func TestHandleFlushFailure(t *testing.T) {
	mem := targets.NewMemoryTarget()
	mem.FlushErr = assert.AnError
	n := newTestNotifier(mem)

	result, err := n.Handle(context.Background(), payload(t,
		record("ObjectCreated:Put", "b", "a.txt", 1),
	))

	require.NoError(t, err)
	assert.Equal(t, 1, result.ProcessedCount)
	assert.Equal(t, 1, result.FailedEmitCount)
}

func TestHandleIdempotent(t *testing.T) {
	data := payload(t,
		record("ObjectCreated:Put", "b", "a.txt", 42),
		record("ObjectCreated:Put", "b", "b.txt", 43),
	)

	first := targets.NewMemoryTarget()
	second := targets.NewMemoryTarget()

	result1, err := newTestNotifier(first).Handle(context.Background(), data)
	require.NoError(t, err)
	result2, err := newTestNotifier(second).Handle(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, result1, result2)
	assert.Equal(t, first.Entries(), second.Entries())
}
