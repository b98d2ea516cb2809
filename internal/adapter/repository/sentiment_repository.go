package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
	"github.com/johnquangdev/email-scheduler/internal/domain/repositories"
)

// sentimentRepository implements the SentimentRepository interface
type sentimentRepository struct {
	db *gorm.DB
}

// NewSentimentRepository creates a new sentiment repository
func NewSentimentRepository(db *gorm.DB) repositories.SentimentRepository {
	return &sentimentRepository{db: db}
}

// Save stores the record, keeping the first analysis if the message was
// already analyzed.
func (r *sentimentRepository) Save(ctx context.Context, record *entities.SentimentRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record).Error
}

// List retrieves all sentiment records, newest first
func (r *sentimentRepository) List(ctx context.Context) ([]*entities.SentimentRecord, error) {
	var rows []*entities.SentimentRecord
	err := r.db.WithContext(ctx).
		Order("processed_at DESC").
		Find(&rows).Error
	return rows, err
}
