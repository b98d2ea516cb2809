package schedule

// ScheduleRequest is the payload for POST /schedule
type ScheduleRequest struct {
	Text string `json:"text" validate:"required"`
}

// RescheduleRequest is the payload for POST /reschedule
type RescheduleRequest struct {
	Text string `json:"text" validate:"required"`
}

// CancelRequest is the payload for POST /cancel
type CancelRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,uuid"`
}

// FeedbackRequest is the payload for POST /feedback
type FeedbackRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,uuid"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comments  string `json:"comments"`
}
