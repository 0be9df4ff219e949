package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/jdwit/upload-notify/internal/types"
	"github.com/sirupsen/logrus"
)

// replayEventName marks synthesized records; real notifications carry the
// event subtype reported by S3.
const replayEventName = "ObjectCreated:Put"

type S3Api interface {
	ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error)
}

// Replayer synthesizes object-created records for objects already present
// under an s3:// URL and runs them through the notification handler, so a
// bucket's existing contents can be backfilled into the log targets.
type Replayer struct {
	s3Client S3Api
	notifier *Notifier
	log      *logrus.Entry
}

func NewReplayer(s3Client S3Api, n *Notifier, log *logrus.Entry) *Replayer {
	return &Replayer{
		s3Client: s3Client,
		notifier: n,
		log:      log,
	}
}

type synthObject struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

type synthBucket struct {
	Name string `json:"name"`
}

type synthS3 struct {
	Bucket synthBucket `json:"bucket"`
	Object synthObject `json:"object"`
}

type synthRecord struct {
	EventName string  `json:"eventName"`
	S3        synthS3 `json:"s3"`
}

type synthEnvelope struct {
	Records []synthRecord `json:"Records"`
}

func (r *Replayer) Replay(ctx context.Context, url string) (types.ProcessingResult, error) {
	bucket, prefix, err := parseS3Url(url)
	if err != nil {
		return types.ProcessingResult{Status: types.StatusFailed}, fmt.Errorf("failed to parse S3 URL: %w", err)
	}

	env := synthEnvelope{Records: []synthRecord{}}
	var continuationToken *string
	for {
		resp, err := r.s3Client.ListObjectsV2(&s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return types.ProcessingResult{Status: types.StatusFailed}, fmt.Errorf("failed to list objects: %w", err)
		}

		for _, item := range resp.Contents {
			env.Records = append(env.Records, synthRecord{
				EventName: replayEventName,
				S3: synthS3{
					Bucket: synthBucket{Name: bucket},
					Object: synthObject{Key: aws.StringValue(item.Key), Size: aws.Int64Value(item.Size)},
				},
			})
		}

		if resp.IsTruncated == nil || !*resp.IsTruncated {
			break
		}
		continuationToken = resp.NextContinuationToken
	}

	r.log.Infof("replaying %d objects from s3://%s/%s", len(env.Records), bucket, prefix)

	payload, err := json.Marshal(env)
	if err != nil {
		return types.ProcessingResult{Status: types.StatusFailed}, fmt.Errorf("failed to marshal synthesized batch: %w", err)
	}

	return r.notifier.Handle(ctx, payload)
}

func parseS3Url(url string) (bucket string, prefix string, err error) {
	if !strings.HasPrefix(url, "s3://") {
		return "", "", fmt.Errorf("invalid S3 URL, missing 's3://' prefix")
	}
	trimmedS3URL := strings.TrimPrefix(url, "s3://")
	splitPos := strings.Index(trimmedS3URL, "/")
	if splitPos == -1 {
		return "", "", fmt.Errorf("invalid S3 URL, no '/' found after bucket name")
	}
	bucket = trimmedS3URL[:splitPos]
	prefix = trimmedS3URL[splitPos+1:]
	return bucket, prefix, nil
}
