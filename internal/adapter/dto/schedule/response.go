package schedule

import "time"

// MeetingResponse is the API shape of a meeting
type MeetingResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Attendees []string  `json:"attendees"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConflictResponse describes one calendar event blocking a requested slot
type ConflictResponse struct {
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// OutcomeResponse is the result of a schedule or reschedule request
type OutcomeResponse struct {
	Status      string             `json:"status"`
	Message     string             `json:"message"`
	Meeting     *MeetingResponse   `json:"meeting,omitempty"`
	Conflicts   []ConflictResponse `json:"conflicts,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

// FeedbackResponse is the API shape of one feedback row
type FeedbackResponse struct {
	ID        uint      `json:"id"`
	MeetingID string    `json:"meeting_id"`
	Rating    int       `json:"rating"`
	Comments  string    `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// MeetingDetailResponse is a meeting together with its feedback
type MeetingDetailResponse struct {
	Meeting  *MeetingResponse   `json:"meeting"`
	Feedback []FeedbackResponse `json:"feedback"`
}
