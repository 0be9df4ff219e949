package targets

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/jdwit/upload-notify/internal/types"
	"github.com/sirupsen/logrus"
)

const (
	TargetCloudWatch = "cloudwatch"
	TargetStdout     = "stdout"
	TargetMemory     = "memory"
)

// Target is an emission port for structured log entries. Emit is called once
// per entry in input order; Flush is called once at the end of an invocation.
type Target interface {
	Name() string
	Emit(entry types.LogEntry) error
	Flush() error
}

func GetTargets(targetsConfig string, sess *session.Session, logConfig LogConfig) ([]Target, error) {
	targetTypes := strings.Split(targetsConfig, ",")
	var targets []Target

	for _, t := range targetTypes {
		var target Target
		var err error

		switch t {
		case TargetCloudWatch:
			target, err = NewCloudWatchTarget(sess, logConfig)
		case TargetStdout:
			target = NewStdoutTarget()
		case TargetMemory:
			target = NewMemoryTarget()
		default:
			logrus.Warnf("unsupported target type: %s", t)
			continue
		}

		// Skip any targets that fail to initialize due to missing config or other errors
		if err != nil {
			logrus.Warnf("could not initialize target %s: %v", t, err)
			continue
		}

		targets = append(targets, target)
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("error: no valid targets initialized")
	}

	return targets, nil
}
