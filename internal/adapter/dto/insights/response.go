package insights

import "time"

// TaskResponse is the API shape of one extracted task
type TaskResponse struct {
	MessageID string    `json:"msg_id"`
	Title     string    `json:"title"`
	Project   string    `json:"project"`
	Assignee  []string  `json:"assignee"`
	DueDate   string    `json:"dueDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SentimentResponse is the API shape of one sentiment record
type SentimentResponse struct {
	MessageID   string    `json:"msg_id"`
	Sentiment   string    `json:"sentiment"`
	Confidence  float64   `json:"confidence"`
	Priority    string    `json:"priority"`
	ProcessedAt time.Time `json:"processed_at"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
}
