package notifier

import (
	"encoding/json"

	notifyerrors "github.com/jdwit/upload-notify/internal/errors"
	"github.com/jdwit/upload-notify/internal/types"
)

// rawRecord mirrors the nested S3 notification shape. Pointer fields
// distinguish a missing value from a zero one.
type rawRecord struct {
	EventName *string `json:"eventName"`
	S3        *struct {
		Bucket *struct {
			Name *string `json:"name"`
		} `json:"bucket"`
		Object *struct {
			Key  *string `json:"key"`
			Size *int64  `json:"size"`
		} `json:"object"`
	} `json:"s3"`
}

// extractRecord validates one candidate record and pulls out the four
// required fields. Values are carried through unchanged.
func extractRecord(index int, raw json.RawMessage) (types.NotificationRecord, error) {
	var rec rawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return types.NotificationRecord{}, notifyerrors.NewRecordExtractionError(index, err.Error())
	}

	switch {
	case rec.EventName == nil:
		return types.NotificationRecord{}, notifyerrors.NewRecordExtractionError(index, "missing eventName")
	case rec.S3 == nil || rec.S3.Bucket == nil || rec.S3.Bucket.Name == nil:
		return types.NotificationRecord{}, notifyerrors.NewRecordExtractionError(index, "missing s3.bucket.name")
	case rec.S3.Object == nil || rec.S3.Object.Key == nil:
		return types.NotificationRecord{}, notifyerrors.NewRecordExtractionError(index, "missing s3.object.key")
	case rec.S3.Object.Size == nil:
		return types.NotificationRecord{}, notifyerrors.NewRecordExtractionError(index, "missing s3.object.size")
	case *rec.S3.Object.Size < 0:
		return types.NotificationRecord{}, notifyerrors.NewRecordExtractionError(index, "negative s3.object.size")
	}

	return types.NotificationRecord{
		EventName: *rec.EventName,
		Bucket:    *rec.S3.Bucket.Name,
		Key:       *rec.S3.Object.Key,
		Size:      *rec.S3.Object.Size,
	}, nil
}
