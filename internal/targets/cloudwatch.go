package targets

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/jdwit/upload-notify/internal/types"
	"github.com/sirupsen/logrus"
)

const (
	// maxBatchSize The maximum batch size of a PutLogEvents request to CloudWatch is 1MB (1_048_576 bytes)
	maxBatchSize = 1_048_576
	// maxBatchCount The maximum number of events in a PutLogEvents request to CloudWatch is 10_000
	maxBatchCount = 10_000
	// eventOverhead Request size to CloudWatch is calculated as the sum of all event messages in UTF-8,
	// plus 26 bytes for each log event
	// https://docs.aws.amazon.com/AmazonCloudWatch/latest/logs/cloudwatch_limits_cwl.html
	eventOverhead = 26
)

type CloudWatchLogsAPI interface {
	PutLogEvents(*cloudwatchlogs.PutLogEventsInput) (*cloudwatchlogs.PutLogEventsOutput, error)
	CreateLogGroup(*cloudwatchlogs.CreateLogGroupInput) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(*cloudwatchlogs.CreateLogStreamInput) (*cloudwatchlogs.CreateLogStreamOutput, error)
	DescribeLogGroups(*cloudwatchlogs.DescribeLogGroupsInput) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	DescribeLogStreams(*cloudwatchlogs.DescribeLogStreamsInput) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
}

type LogConfig struct {
	LogGroupName  string
	LogStreamName string
}

// CloudWatchTarget buffers entries and sends them to CloudWatch Logs in
// batches that respect the PutLogEvents limits. A batch is sent when adding
// an entry would overflow it, and on Flush.
type CloudWatchTarget struct {
	cwClient         CloudWatchLogsAPI
	logConfig        LogConfig
	events           []*cloudwatchlogs.InputLogEvent
	currentBatchSize int
}

func NewCloudWatchTarget(sess *session.Session, logConfig LogConfig) (*CloudWatchTarget, error) {
	if logConfig.LogGroupName == "" {
		return nil, fmt.Errorf("cloudwatch log group is required")
	}
	if logConfig.LogStreamName == "" {
		return nil, fmt.Errorf("cloudwatch log stream is required")
	}

	cwClient := cloudwatchlogs.New(sess)
	err := ensureLogGroupAndLogStreamExists(cwClient, logConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating log group and stream: %w", err)
	}

	return &CloudWatchTarget{cwClient: cwClient, logConfig: logConfig}, nil
}

func newCloudWatchTargetWithClient(client CloudWatchLogsAPI, logConfig LogConfig) *CloudWatchTarget {
	return &CloudWatchTarget{cwClient: client, logConfig: logConfig}
}

func (c *CloudWatchTarget) Name() string {
	return TargetCloudWatch
}

func (c *CloudWatchTarget) Emit(entry types.LogEntry) error {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error marshaling log entry to JSON: %w", err)
	}

	event := &cloudwatchlogs.InputLogEvent{
		Message:   aws.String(string(jsonData)),
		Timestamp: aws.Int64(time.Now().UnixMilli()),
	}
	eventSize := len(jsonData) + eventOverhead

	// Check if adding this event exceeds batch size or count
	var sendErr error
	if len(c.events) > 0 && (c.currentBatchSize+eventSize > maxBatchSize || len(c.events) >= maxBatchCount) {
		sendErr = c.sendBatch()
	}

	c.events = append(c.events, event)
	c.currentBatchSize += eventSize

	return sendErr
}

func (c *CloudWatchTarget) Flush() error {
	if len(c.events) == 0 {
		return nil
	}

	return c.sendBatch()
}

func (c *CloudWatchTarget) sendBatch() error {
	// Log events in a single PutLogEvents request must be in chronological order
	sort.Slice(c.events, func(i, j int) bool {
		return aws.Int64Value(c.events[i].Timestamp) < aws.Int64Value(c.events[j].Timestamp)
	})
	_, err := c.cwClient.PutLogEvents(&cloudwatchlogs.PutLogEventsInput{
		LogEvents:     c.events,
		LogGroupName:  aws.String(c.logConfig.LogGroupName),
		LogStreamName: aws.String(c.logConfig.LogStreamName),
	})

	c.events = nil
	c.currentBatchSize = 0

	if err != nil {
		return fmt.Errorf("error sending events to CloudWatch: %w", err)
	}

	return nil
}

func ensureLogGroupAndLogStreamExists(client CloudWatchLogsAPI, logConfig LogConfig) error {
	err := ensureLogGroupExists(client, logConfig.LogGroupName)
	if err != nil {
		return err
	}
	err = ensureLogStreamExists(client, logConfig.LogGroupName, logConfig.LogStreamName)

	return err
}

func ensureLogGroupExists(client CloudWatchLogsAPI, name string) error {
	resp, err := client.DescribeLogGroups(&cloudwatchlogs.DescribeLogGroupsInput{})
	if err != nil {
		return err
	}
	for _, logGroup := range resp.LogGroups {
		if *logGroup.LogGroupName == name {
			return nil
		}
	}
	logrus.Infof("creating log group %s", name)
	_, err = client.CreateLogGroup(&cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(name),
	})

	return err
}

func ensureLogStreamExists(client CloudWatchLogsAPI, logGroupName, logStreamName string) error {
	resp, err := client.DescribeLogStreams(&cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: aws.String(logGroupName),
	})
	if err != nil {
		return err
	}
	for _, logStream := range resp.LogStreams {
		if *logStream.LogStreamName == logStreamName {
			return nil
		}
	}
	logrus.Infof("creating log stream %s in log group %s", logStreamName, logGroupName)
	_, err = client.CreateLogStream(&cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(logGroupName),
		LogStreamName: aws.String(logStreamName),
	})

	return err
}
