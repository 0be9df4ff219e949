package notifier

import (
	"context"
	"encoding/json"

	notifyerrors "github.com/jdwit/upload-notify/internal/errors"
	"github.com/jdwit/upload-notify/internal/targets"
	"github.com/jdwit/upload-notify/internal/types"
	"github.com/sirupsen/logrus"
)

// Notifier turns an inbound notification batch into structured log output
// and a status summary. It holds no state between invocations, so one
// instance can serve any number of concurrent batches.
type Notifier struct {
	targets []targets.Target
	log     *logrus.Entry
}

func New(tgs []targets.Target, log *logrus.Entry) *Notifier {
	return &Notifier{
		targets: tgs,
		log:     log,
	}
}

// Handle processes one notification batch. The payload is untrusted; only
// an unparseable top-level envelope fails the invocation. Invalid records
// and failed emissions are counted and skipped.
//
// The returned error is always a *notifyerrors.MalformedBatchError when
// non-nil; the result carries the failed status for the invoking platform.
func (n *Notifier) Handle(ctx context.Context, payload json.RawMessage) (types.ProcessingResult, error) {
	var envelope types.NotificationEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return types.ProcessingResult{Status: types.StatusFailed}, notifyerrors.NewMalformedBatchError(err.Error())
	}
	if envelope.Records == nil {
		return types.ProcessingResult{Status: types.StatusFailed}, notifyerrors.NewMalformedBatchError("missing Records sequence")
	}

	// Echo the full inbound payload once per invocation for diagnostic traceability
	n.log.WithField("payload", string(payload)).Info("received notification batch")

	var result types.ProcessingResult
	for i, raw := range envelope.Records {
		record, err := extractRecord(i, raw)
		if err != nil {
			n.log.WithError(err).Warn("rejecting notification record")
			result.RejectedCount++
			continue
		}

		entry := types.LogEntry{
			Bucket: record.Bucket,
			Key:    record.Key,
			Size:   record.Size,
			Event:  record.EventName,
		}
		for _, t := range n.targets {
			if err := t.Emit(entry); err != nil {
				n.log.WithError(notifyerrors.NewLogEmissionError(t.Name(), err.Error())).Warn("log emission failed")
				result.FailedEmitCount++
			}
		}
		result.ProcessedCount++
	}

	for _, t := range n.targets {
		if err := t.Flush(); err != nil {
			n.log.WithError(notifyerrors.NewLogEmissionError(t.Name(), err.Error())).Warn("log emission failed")
			result.FailedEmitCount++
		}
	}

	switch {
	case result.RejectedCount == 0:
		// includes the empty batch, which is a trivial success
		result.Status = types.StatusProcessed
	case result.ProcessedCount == 0:
		result.Status = types.StatusFailed
	default:
		result.Status = types.StatusPartial
	}

	return result, nil
}
