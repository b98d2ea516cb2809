package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
	"github.com/johnquangdev/email-scheduler/internal/domain/repositories"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &taskRepository{db: db}
}

// InsertBatch inserts tasks one by one, dropping (msg_id, title) duplicates
// via the unique index, and returns how many rows were actually inserted.
func (r *taskRepository) InsertBatch(ctx context.Context, tasks []*entities.ExtractedTask) (int, error) {
	inserted := 0
	for _, task := range tasks {
		res := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(task)
		if res.Error != nil {
			return inserted, res.Error
		}
		inserted += int(res.RowsAffected)
	}
	return inserted, nil
}

// List retrieves all extracted tasks, newest first
func (r *taskRepository) List(ctx context.Context) ([]*entities.ExtractedTask, error) {
	var rows []*entities.ExtractedTask
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
