package cli

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/jdwit/upload-notify/internal/notifier"
	"github.com/spf13/cobra"
)

// replayCmd backfills notifications for objects already in a bucket.
var replayCmd = &cobra.Command{
	Use:   "replay s3://bucket/prefix",
	Short: "Synthesize notifications for existing objects and process them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cfg)
		if err != nil {
			return err
		}

		n, err := newNotifier(cfg, sess)
		if err != nil {
			return err
		}

		r := notifier.NewReplayer(s3.New(sess), n, logger.WithField("component", "replayer"))
		result, err := r.Replay(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out, err := json.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
