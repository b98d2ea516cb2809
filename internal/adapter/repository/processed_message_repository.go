package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
	"github.com/johnquangdev/email-scheduler/internal/domain/repositories"
)

// processedMessageRepository implements the ProcessedMessageRepository interface
type processedMessageRepository struct {
	db *gorm.DB
}

// NewProcessedMessageRepository creates a new processed message repository
func NewProcessedMessageRepository(db *gorm.DB) repositories.ProcessedMessageRepository {
	return &processedMessageRepository{db: db}
}

// Exists reports whether the message id has already completed the pipeline
func (r *processedMessageRepository) Exists(ctx context.Context, messageID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ProcessedMessage{}).
		Where("message_id = ?", messageID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert marks the message id as processed. Concurrent inserts of the same id
// are harmless; the unique index turns the second one into a no-op.
func (r *processedMessageRepository) Insert(ctx context.Context, messageID string) error {
	row := &entities.ProcessedMessage{MessageID: messageID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
}
