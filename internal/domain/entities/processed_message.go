package entities

import "time"

// ProcessedMessage records a mailbox message id whose pipeline run completed.
// Existence of a row is the sole durable dedup gate for ingestion idempotence;
// it is written only after sentiment, task and scheduling handling finished.
type ProcessedMessage struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageID   string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"message_id"`
	ProcessedAt time.Time `gorm:"default:now()" json:"processed_at"`
}

// TableName specifies the table name for ProcessedMessage
func (ProcessedMessage) TableName() string {
	return "processed_messages"
}
