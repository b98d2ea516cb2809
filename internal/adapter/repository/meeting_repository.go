package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
	"github.com/johnquangdev/email-scheduler/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create inserts a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// FindBySlot retrieves the oldest meeting matching (title, date, time) in any
// lifecycle status. The status filter deliberately includes canceled rows; a
// reschedule against such a row resurrects it.
func (r *meetingRepository) FindBySlot(ctx context.Context, title, date, clock string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("title = ? AND date = ? AND time = ? AND status IN ?", title, date, clock, entities.AllMeetingStatuses).
		Order("created_at ASC").
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// UpdateSlot moves a meeting to a new date/time and status
func (r *meetingRepository) UpdateSlot(ctx context.Context, id uuid.UUID, date, clock string, status entities.MeetingStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"date":       date,
			"time":       clock,
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

// UpdateStatus updates only the lifecycle status
func (r *meetingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

// List retrieves all meetings, newest first
func (r *meetingRepository) List(ctx context.Context) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&meetings).Error
	return meetings, err
}
