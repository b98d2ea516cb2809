package jobcontext

import (
	"context"
	"fmt"
	"time"
)

type KeyContext string

var (
	keyMessageID    KeyContext = "message_id"
	keyJobType      KeyContext = "job_type"
	keyJobStartTime KeyContext = "job_start_time"
)

// JobMetadata holds metadata for a job execution
type JobMetadata struct {
	MessageID string
	JobType   string
	StartTime time.Time
}

// JobBegin initializes a job context with metadata and timeout.
// Every per-message pipeline run gets at most 5 minutes.
func JobBegin(parentCtx context.Context, messageID, jobType string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, 5*time.Minute)

	ctx = context.WithValue(ctx, keyMessageID, messageID)
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())

	return ctx, cancel
}

// Run executes the job function once with panic recovery. There is no retry
// here; a failed message stays unprocessed and is revisited on a later poll.
func Run(ctx context.Context, jobFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before job execution: %w", ctx.Err())
	}

	return jobFunc(ctx)
}

// GetMessageID extracts the message id from context
func GetMessageID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(keyMessageID).(string)
	return id, ok
}

// GetJobType extracts job type from context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// GetJobStartTime extracts job start time from context
func GetJobStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyJobStartTime).(time.Time)
	return startTime, ok
}

// GetJobMetadata extracts all job metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	messageID, _ := GetMessageID(ctx)
	jobType, _ := GetJobType(ctx)
	startTime, _ := GetJobStartTime(ctx)

	return &JobMetadata{
		MessageID: messageID,
		JobType:   jobType,
		StartTime: startTime,
	}
}
