package cli

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jdwit/upload-notify/internal/config"
	"github.com/jdwit/upload-notify/internal/types"
)

// RunLambda wires the handler into the Lambda runtime. A malformed batch is
// reported through the result object rather than a handler error, so the
// platform does not retry an invocation that cannot succeed.
func RunLambda() {
	var err error
	cfg, err = config.Load("")
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}

	sess, err := newSession(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to create AWS session")
	}

	n, err := newNotifier(cfg, sess)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize targets")
	}

	lambda.Start(func(ctx context.Context, payload json.RawMessage) (types.ProcessingResult, error) {
		result, err := n.Handle(ctx, payload)
		if err != nil {
			logger.WithError(err).Error("batch rejected")
		}
		return result, nil
	})
}
