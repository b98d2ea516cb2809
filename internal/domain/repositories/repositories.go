package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
)

// MeetingRepository defines meeting persistence operations
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	// FindBySlot looks up a reschedule/cancel target by its composite key
	// (title, date, time) across every lifecycle status, canceled included.
	// Returns nil when no row matches.
	FindBySlot(ctx context.Context, title, date, clock string) (*entities.Meeting, error)
	UpdateSlot(ctx context.Context, id uuid.UUID, date, clock string, status entities.MeetingStatus) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error
	List(ctx context.Context) ([]*entities.Meeting, error)
}

// FeedbackRepository defines feedback persistence operations
type FeedbackRepository interface {
	Create(ctx context.Context, fb *entities.Feedback) error
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Feedback, error)
	List(ctx context.Context) ([]*entities.Feedback, error)
}

// ProcessedMessageRepository is the durable ingestion dedup set
type ProcessedMessageRepository interface {
	Exists(ctx context.Context, messageID string) (bool, error)
	Insert(ctx context.Context, messageID string) error
}

// SentimentRepository stores per-message sentiment analysis
type SentimentRepository interface {
	Save(ctx context.Context, record *entities.SentimentRecord) error
	List(ctx context.Context) ([]*entities.SentimentRecord, error)
}

// TaskRepository stores tasks extracted from messages
type TaskRepository interface {
	// InsertBatch inserts tasks, silently dropping (msg_id, title) duplicates.
	InsertBatch(ctx context.Context, tasks []*entities.ExtractedTask) (int, error)
	List(ctx context.Context) ([]*entities.ExtractedTask, error)
}
