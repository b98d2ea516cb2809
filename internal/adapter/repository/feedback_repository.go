package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
	"github.com/johnquangdev/email-scheduler/internal/domain/repositories"
)

// feedbackRepository implements the FeedbackRepository interface
type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) repositories.FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create appends a feedback row
func (r *feedbackRepository) Create(ctx context.Context, fb *entities.Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

// FindByMeetingID retrieves all feedback for one meeting, oldest first
func (r *feedbackRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Feedback, error) {
	var rows []*entities.Feedback
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// List retrieves all feedback rows, newest first
func (r *feedbackRepository) List(ctx context.Context) ([]*entities.Feedback, error) {
	var rows []*entities.Feedback
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
