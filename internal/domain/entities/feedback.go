package entities

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is an append-only rating left for a meeting. The meeting id is a
// reference, not ownership: the meeting may be canceled after feedback exists.
type Feedback struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comments  string    `gorm:"type:text" json:"comments"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for Feedback
func (Feedback) TableName() string {
	return "feedback"
}
