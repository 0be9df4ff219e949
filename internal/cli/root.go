package cli

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/jdwit/upload-notify/internal/config"
	"github.com/jdwit/upload-notify/internal/notifier"
	"github.com/jdwit/upload-notify/internal/targets"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "upload-notify",
	Short: "Process S3 upload notification batches",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Fatal("error occured while running upload-notify")
	}
}

func init() {
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to yaml config file")
}

func newSession(cfg *config.Config) (*session.Session, error) {
	if cfg.AWS.Endpoint != "" {
		// localstack
		return session.NewSession(&aws.Config{
			Endpoint:         aws.String(cfg.AWS.Endpoint),
			DisableSSL:       aws.Bool(true),
			S3ForcePathStyle: aws.Bool(true),
		})
	}

	return session.NewSession()
}

func newNotifier(cfg *config.Config, sess *session.Session) (*notifier.Notifier, error) {
	logConfig := targets.LogConfig{
		LogGroupName:  cfg.CloudWatch.LogGroup,
		LogStreamName: cfg.CloudWatch.LogStream,
	}

	tgs, err := targets.GetTargets(cfg.Targets, sess, logConfig)
	if err != nil {
		return nil, err
	}

	return notifier.New(tgs, logger.WithField("component", "notifier")), nil
}
