package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var processFile string

// processCmd feeds a notification payload from a file or stdin through the
// handler and prints the processing summary.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run a notification payload through the handler",
	RunE: func(cmd *cobra.Command, args []string) error {
		var payload []byte
		var err error
		if processFile != "" {
			payload, err = os.ReadFile(processFile)
		} else {
			payload, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}

		sess, err := newSession(cfg)
		if err != nil {
			return err
		}

		n, err := newNotifier(cfg, sess)
		if err != nil {
			return err
		}

		result, err := n.Handle(cmd.Context(), payload)
		if err != nil {
			logger.WithError(err).Error("batch rejected")
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
	processCmd.Flags().StringVarP(&processFile, "file", "f", "", "path to notification payload (defaults to stdin)")
	rootCmd.AddCommand(processCmd)
}
