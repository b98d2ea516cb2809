package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/johnquangdev/email-scheduler/errors"
	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
	"github.com/johnquangdev/email-scheduler/internal/domain/repositories"
	"github.com/johnquangdev/email-scheduler/pkg/invite"
)

// LLM is the slice of the language-model provider used for intent extraction.
type LLM interface {
	ExtractIntent(ctx context.Context, text, sender string) (string, error)
}

// Mailer sends raw, already-encoded mail messages.
type Mailer interface {
	SendMessage(ctx context.Context, raw string) error
}

// Service defines the interface for the scheduling use case
type Service interface {
	// Handle extracts an intent from free text and routes it to the matching
	// scheduling action.
	Handle(ctx context.Context, text, sender string) *Outcome

	// Schedule processes text expected to carry a schedule intent
	Schedule(ctx context.Context, text, sender string) *Outcome

	// Reschedule processes text expected to carry a reschedule intent
	Reschedule(ctx context.Context, text, sender string) *Outcome

	// Cancel marks a meeting canceled by id
	Cancel(ctx context.Context, meetingID uuid.UUID) error

	// Feedback records a rating for a meeting
	Feedback(ctx context.Context, meetingID uuid.UUID, rating int, comments string) (*entities.Feedback, error)

	// ListMeetings retrieves all meetings
	ListMeetings(ctx context.Context) ([]*entities.Meeting, error)

	// GetMeeting retrieves one meeting together with its feedback
	GetMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, []*entities.Feedback, error)

	// ListFeedback retrieves all feedback rows
	ListFeedback(ctx context.Context) ([]*entities.Feedback, error)
}

// IntentPipeline turns extracted intents into meeting lifecycle transitions,
// calendar events and confirmation mail.
type IntentPipeline struct {
	meetings   repositories.MeetingRepository
	feedback   repositories.FeedbackRepository
	llm        LLM
	calendar   CalendarAPI
	mailer     Mailer
	detector   *ConflictDetector
	suggester  *Suggester
	normalizer *AttendeeNormalizer
	fromAddr   string
	logger     *zap.Logger
}

var _ Service = (*IntentPipeline)(nil)

// NewIntentPipeline wires the scheduling pipeline. calendar and mailer may be
// nil when the provider integration is not configured; scheduling then still
// persists meetings but reports the remote steps as failed.
func NewIntentPipeline(
	meetings repositories.MeetingRepository,
	feedback repositories.FeedbackRepository,
	llm LLM,
	calendar CalendarAPI,
	mailer Mailer,
	detector *ConflictDetector,
	suggester *Suggester,
	normalizer *AttendeeNormalizer,
	fromAddr string,
	logger *zap.Logger,
) *IntentPipeline {
	return &IntentPipeline{
		meetings:   meetings,
		feedback:   feedback,
		llm:        llm,
		calendar:   calendar,
		mailer:     mailer,
		detector:   detector,
		suggester:  suggester,
		normalizer: normalizer,
		fromAddr:   fromAddr,
		logger:     logger,
	}
}

// Handle extracts the intent once and dispatches on its kind. Unrecognized
// kinds are a no-op.
func (p *IntentPipeline) Handle(ctx context.Context, text, sender string) *Outcome {
	return p.run(ctx, text, sender, "")
}

// Schedule processes text expected to carry a schedule intent
func (p *IntentPipeline) Schedule(ctx context.Context, text, sender string) *Outcome {
	return p.run(ctx, text, sender, entities.IntentSchedule)
}

// Reschedule processes text expected to carry a reschedule intent
func (p *IntentPipeline) Reschedule(ctx context.Context, text, sender string) *Outcome {
	return p.run(ctx, text, sender, entities.IntentReschedule)
}

func (p *IntentPipeline) run(ctx context.Context, text, sender string, expect entities.IntentKind) *Outcome {
	raw, err := p.llm.ExtractIntent(ctx, text, sender)
	if err != nil {
		p.logger.Error("intent extraction failed", zap.Error(err))
		return failed("Could not reach the language model. No email sent.")
	}

	intent, err := ParseIntent(raw)
	if err != nil {
		p.logger.Warn("intent payload did not parse", zap.Error(err))
		return failed("Failed to parse the meeting details. No email sent.")
	}

	if expect != "" && intent.Kind != expect {
		return skipped(intent.Kind, actionName(expect))
	}

	switch intent.Kind {
	case entities.IntentSchedule:
		return p.schedule(ctx, intent, sender)
	case entities.IntentReschedule:
		return p.reschedule(ctx, intent, sender)
	default:
		return skipped(intent.Kind, "scheduling")
	}
}

func actionName(kind entities.IntentKind) string {
	if kind == entities.IntentReschedule {
		return "rescheduling"
	}
	return "scheduling"
}

func (p *IntentPipeline) schedule(ctx context.Context, intent *entities.Intent, sender string) *Outcome {
	start, err := entities.ParseSlot(intent.NewDate, intent.NewTime)
	if err != nil {
		p.logger.Warn("intent carried an unparseable slot",
			zap.String("date", intent.NewDate), zap.String("time", intent.NewTime))
		return failed("Failed to parse the meeting details. No email sent.")
	}
	end := start.Add(time.Hour)

	conflicts, err := p.detector.Detect(ctx, start, end)
	if err != nil {
		p.logger.Error("conflict check failed", zap.Error(err))
		return failed("Could not verify calendar availability. No email sent.")
	}
	if len(conflicts) > 0 {
		return conflictOutcome(conflicts, p.suggester.Suggest(ctx, start))
	}

	attendees := p.normalizer.Normalize(intent.Attendees, sender, intent.SenderRequired)
	attendeesJSON, err := json.Marshal(attendees)
	if err != nil {
		return failed("Failed to encode attendees. No email sent.")
	}

	meeting := &entities.Meeting{
		ID:        uuid.New(),
		Title:     intent.Title,
		Date:      intent.NewDate,
		Time:      intent.NewTime,
		Attendees: datatypes.JSON(attendeesJSON),
		Status:    entities.MeetingStatusScheduled,
	}
	if err := p.meetings.Create(ctx, meeting); err != nil {
		p.logger.Error("failed to persist meeting", zap.Error(err))
		return failed("Failed to store the meeting. No email sent.")
	}

	message := fmt.Sprintf("Meeting '%s' scheduled on %s at %s with attendees: %v.",
		intent.Title, intent.NewDate, intent.NewTime, attendees)

	if remoteErr := p.createRemoteEvent(ctx, intent.Title, start, attendees); remoteErr != nil {
		p.logger.Error("calendar event creation failed", zap.Error(remoteErr))
		message = fmt.Sprintf("Meeting '%s' scheduled locally but failed to create in Google Calendar.", intent.Title)
	} else {
		p.notify(ctx, meeting, start, end, attendees)
	}

	return &Outcome{Status: OutcomeScheduled, Message: message, Meeting: meeting}
}

func (p *IntentPipeline) reschedule(ctx context.Context, intent *entities.Intent, sender string) *Outcome {
	oldStart, err := entities.ParseSlot(intent.OldDate, intent.OldTime)
	if err != nil {
		return failed("Failed to parse the current meeting details. No email sent.")
	}
	newStart, err := entities.ParseSlot(intent.NewDate, intent.NewTime)
	if err != nil {
		return failed("Failed to parse the new meeting details. No email sent.")
	}
	newEnd := newStart.Add(time.Hour)

	meeting, err := p.meetings.FindBySlot(ctx, intent.Title, intent.OldDate, intent.OldTime)
	if err != nil {
		p.logger.Error("meeting lookup failed", zap.Error(err))
		return failed("Failed to look up the meeting. No email sent.")
	}
	if meeting == nil {
		return &Outcome{
			Status: OutcomeNotFound,
			Message: fmt.Sprintf("Meeting with title '%s' on %s at %s does not exist. No email sent.",
				intent.Title, intent.OldDate, intent.OldTime),
		}
	}

	conflicts, err := p.detector.Detect(ctx, newStart, newEnd)
	if err != nil {
		p.logger.Error("conflict check failed", zap.Error(err))
		return failed("Could not verify calendar availability. No email sent.")
	}
	if len(conflicts) > 0 {
		return conflictOutcome(conflicts, p.suggester.Suggest(ctx, newStart))
	}

	attendees := p.normalizer.Normalize(intent.Attendees, sender, intent.SenderRequired)

	if err := p.meetings.UpdateSlot(ctx, meeting.ID, intent.NewDate, intent.NewTime, entities.MeetingStatusRescheduled); err != nil {
		p.logger.Error("failed to update meeting", zap.Error(err))
		return failed("Failed to update the meeting. No email sent.")
	}
	meeting.Date = intent.NewDate
	meeting.Time = intent.NewTime
	meeting.Status = entities.MeetingStatusRescheduled

	message := fmt.Sprintf("Meeting '%s' rescheduled to %s at %s with attendees: %v.",
		intent.Title, intent.NewDate, intent.NewTime, attendees)

	// Create the new event before deleting the old one. A failure in between
	// leaves a duplicate on the calendar, never a gap.
	if remoteErr := p.createRemoteEvent(ctx, intent.Title, newStart, attendees); remoteErr != nil {
		p.logger.Error("calendar event creation failed", zap.Error(remoteErr))
		message = fmt.Sprintf("Meeting '%s' rescheduled locally but failed to create in Google Calendar.", intent.Title)
	} else {
		p.deleteRemoteEventAt(ctx, oldStart)
		p.notify(ctx, meeting, newStart, newEnd, attendees)
	}

	return &Outcome{Status: OutcomeRescheduled, Message: message, Meeting: meeting}
}

// Cancel marks a meeting canceled. The remote calendar event is deliberately
// left in place.
func (p *IntentPipeline) Cancel(ctx context.Context, meetingID uuid.UUID) error {
	meeting, err := p.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}
	if meeting == nil {
		return apperrors.ErrNotFound("Meeting")
	}
	if err := p.meetings.UpdateStatus(ctx, meetingID, entities.MeetingStatusCanceled); err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}
	return nil
}

// Feedback records a rating for a meeting
func (p *IntentPipeline) Feedback(ctx context.Context, meetingID uuid.UUID, rating int, comments string) (*entities.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidArgument("rating must be between 1 and 5")
	}
	meeting, err := p.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	if meeting == nil {
		return nil, apperrors.ErrNotFound("Meeting")
	}

	fb := &entities.Feedback{
		MeetingID: meetingID,
		Rating:    rating,
		Comments:  comments,
	}
	if err := p.feedback.Create(ctx, fb); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return fb, nil
}

// ListMeetings retrieves all meetings
func (p *IntentPipeline) ListMeetings(ctx context.Context) ([]*entities.Meeting, error) {
	meetings, err := p.meetings.List(ctx)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return meetings, nil
}

// GetMeeting retrieves one meeting together with its feedback
func (p *IntentPipeline) GetMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, []*entities.Feedback, error) {
	meeting, err := p.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed(err)
	}
	if meeting == nil {
		return nil, nil, apperrors.ErrNotFound("Meeting")
	}
	feedback, err := p.feedback.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed(err)
	}
	return meeting, feedback, nil
}

// ListFeedback retrieves all feedback rows
func (p *IntentPipeline) ListFeedback(ctx context.Context) ([]*entities.Feedback, error) {
	rows, err := p.feedback.List(ctx)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return rows, nil
}

func (p *IntentPipeline) createRemoteEvent(ctx context.Context, title string, start time.Time, attendees []string) error {
	if p.calendar == nil {
		return fmt.Errorf("calendar provider not configured")
	}
	_, err := p.calendar.InsertEvent(ctx, title, start, attendees)
	return err
}

// deleteRemoteEventAt removes whatever event sits at the old slot. The event
// id was never stored, so it is located by a 1-minute window search.
func (p *IntentPipeline) deleteRemoteEventAt(ctx context.Context, start time.Time) {
	if p.calendar == nil {
		return
	}
	events, err := p.calendar.ListEvents(ctx, start, start.Add(time.Minute))
	if err != nil {
		p.logger.Warn("could not search for old calendar event", zap.Error(err))
		return
	}
	for _, event := range events {
		if err := p.calendar.DeleteEvent(ctx, event.ID); err != nil {
			p.logger.Warn("could not delete old calendar event",
				zap.String("event_id", event.ID), zap.Error(err))
		}
		return
	}
}

// notify sends the confirmation mail with the ICS attachment. Mail failure
// never rolls back the stored meeting.
func (p *IntentPipeline) notify(ctx context.Context, meeting *entities.Meeting, start, end time.Time, attendees []string) {
	if p.mailer == nil {
		return
	}
	raw, err := invite.BuildConfirmationEmail(p.fromAddr, invite.Details{
		MeetingID: meeting.ID,
		Title:     meeting.Title,
		Start:     start,
		End:       end,
		Organizer: p.fromAddr,
		Attendees: attendees,
	})
	if err != nil {
		p.logger.Warn("could not build confirmation email", zap.Error(err))
		return
	}
	if err := p.mailer.SendMessage(ctx, raw); err != nil {
		p.logger.Warn("could not send confirmation email", zap.Error(err))
	}
}
