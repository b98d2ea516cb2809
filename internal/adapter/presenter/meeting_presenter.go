package presenter

import (
	"encoding/json"
	"time"

	"github.com/johnquangdev/email-scheduler/internal/adapter/dto/insights"
	"github.com/johnquangdev/email-scheduler/internal/adapter/dto/schedule"
	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
	"github.com/johnquangdev/email-scheduler/internal/usecase/scheduler"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *schedule.MeetingResponse {
	if m == nil {
		return nil
	}

	var attendees []string
	if m.Attendees != nil {
		json.Unmarshal(m.Attendees, &attendees)
	}
	if attendees == nil {
		attendees = []string{}
	}

	return &schedule.MeetingResponse{
		ID:        m.ID.String(),
		Title:     m.Title,
		Date:      m.Date,
		Time:      m.Time,
		Attendees: attendees,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToMeetingListResponse converts a slice of meetings
func ToMeetingListResponse(meetings []*entities.Meeting) []*schedule.MeetingResponse {
	out := make([]*schedule.MeetingResponse, len(meetings))
	for i, m := range meetings {
		out[i] = ToMeetingResponse(m)
	}
	return out
}

// ToOutcomeResponse converts a scheduling Outcome to its API shape
func ToOutcomeResponse(o *scheduler.Outcome) *schedule.OutcomeResponse {
	if o == nil {
		return nil
	}

	resp := &schedule.OutcomeResponse{
		Status:  string(o.Status),
		Message: o.Message,
		Meeting: ToMeetingResponse(o.Meeting),
	}
	for _, c := range o.Conflicts {
		resp.Conflicts = append(resp.Conflicts, schedule.ConflictResponse{
			Summary: c.Summary,
			Start:   c.Start,
			End:     c.End,
		})
	}
	for _, s := range o.Suggestions {
		resp.Suggestions = append(resp.Suggestions, s.UTC().Format(time.RFC3339))
	}
	return resp
}

// ToFeedbackResponse converts a Feedback entity to its API shape
func ToFeedbackResponse(fb *entities.Feedback) schedule.FeedbackResponse {
	return schedule.FeedbackResponse{
		ID:        fb.ID,
		MeetingID: fb.MeetingID.String(),
		Rating:    fb.Rating,
		Comments:  fb.Comments,
		CreatedAt: fb.CreatedAt,
	}
}

// ToMeetingDetailResponse combines a meeting with its feedback rows
func ToMeetingDetailResponse(m *entities.Meeting, feedback []*entities.Feedback) *schedule.MeetingDetailResponse {
	fbs := make([]schedule.FeedbackResponse, len(feedback))
	for i, fb := range feedback {
		fbs[i] = ToFeedbackResponse(fb)
	}
	return &schedule.MeetingDetailResponse{
		Meeting:  ToMeetingResponse(m),
		Feedback: fbs,
	}
}

// ToTaskResponse converts an ExtractedTask entity to its API shape
func ToTaskResponse(t *entities.ExtractedTask) insights.TaskResponse {
	var assignee []string
	if t.Assignee != nil {
		json.Unmarshal(t.Assignee, &assignee)
	}
	if assignee == nil {
		assignee = []string{}
	}

	return insights.TaskResponse{
		MessageID: t.MessageID,
		Title:     t.Title,
		Project:   t.Project,
		Assignee:  assignee,
		DueDate:   t.DueDate,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}

// ToSentimentResponse converts a SentimentRecord entity to its API shape
func ToSentimentResponse(r *entities.SentimentRecord) insights.SentimentResponse {
	return insights.SentimentResponse{
		MessageID:   r.MessageID,
		Sentiment:   r.Sentiment,
		Confidence:  r.Confidence,
		Priority:    r.Priority,
		ProcessedAt: r.ProcessedAt,
		Subject:     r.Subject,
		Body:        r.Body,
	}
}
