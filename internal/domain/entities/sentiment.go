package entities

import "time"

// Sentiment labels assigned to an ingested message body.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// Priority tiers derived from sentiment and urgency keywords.
const (
	PriorityHighUrgent   = "High Priority - Urgent"
	PriorityHighNegative = "High Priority - Negative"
	PriorityLowPositive  = "Low Priority - Positive"
	PriorityMedium       = "Medium Priority"
)

// SentimentRecord stores one sentiment analysis per ingested message,
// independent of whether scheduling succeeded for that message.
type SentimentRecord struct {
	MessageID   string    `gorm:"column:msg_id;type:varchar(255);primaryKey" json:"msg_id"`
	Sentiment   string    `gorm:"type:varchar(20);not null" json:"sentiment"`
	Confidence  float64   `gorm:"not null" json:"confidence"`
	Priority    string    `gorm:"type:varchar(50);not null" json:"priority"`
	Subject     string    `gorm:"type:text" json:"subject"`
	Body        string    `gorm:"type:text" json:"body"`
	ProcessedAt time.Time `gorm:"default:now()" json:"processed_at"`
}

// TableName specifies the table name for SentimentRecord
func (SentimentRecord) TableName() string {
	return "sentiment_analysis"
}
