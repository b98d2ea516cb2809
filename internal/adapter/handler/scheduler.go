package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/email-scheduler/internal/adapter/dto/schedule"
	"github.com/johnquangdev/email-scheduler/internal/adapter/presenter"
	schedulerUsecase "github.com/johnquangdev/email-scheduler/internal/usecase/scheduler"
)

// Scheduler handles scheduling-related HTTP requests
type Scheduler struct {
	service schedulerUsecase.Service
	logger  *zap.Logger
}

// NewSchedulerHandler creates a new scheduler handler
func NewSchedulerHandler(service schedulerUsecase.Service, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		service: service,
		logger:  logger,
	}
}

// Schedule handles POST /schedule
// @Summary      Schedule a meeting from natural language
// @Description  Extracts a schedule intent from free text, checks conflicts and stores the meeting
// @Tags         Scheduling
// @Accept       json
// @Produce      json
// @Param        request  body      schedule.ScheduleRequest  true  "Scheduling request"
// @Success      200      {object}  schedule.OutcomeResponse  "Scheduling outcome"
// @Failure      400      {object}  map[string]interface{}    "Invalid request"
// @Router       /schedule [post]
func (h *Scheduler) Schedule(c echo.Context) error {
	var req schedule.ScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	}

	outcome := h.service.Schedule(c.Request().Context(), req.Text, h.senderAddress(c))
	return c.JSON(http.StatusOK, presenter.ToOutcomeResponse(outcome))
}

// Reschedule handles POST /reschedule
// @Summary      Reschedule a meeting from natural language
// @Tags         Scheduling
// @Accept       json
// @Produce      json
// @Param        request  body      schedule.RescheduleRequest  true  "Rescheduling request"
// @Success      200      {object}  schedule.OutcomeResponse    "Rescheduling outcome"
// @Failure      400      {object}  map[string]interface{}      "Invalid request"
// @Router       /reschedule [post]
func (h *Scheduler) Reschedule(c echo.Context) error {
	var req schedule.RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	}

	outcome := h.service.Reschedule(c.Request().Context(), req.Text, h.senderAddress(c))
	return c.JSON(http.StatusOK, presenter.ToOutcomeResponse(outcome))
}

// Cancel handles POST /cancel
// @Summary      Cancel a meeting by id
// @Description  Marks the meeting canceled. The remote calendar event is left in place.
// @Tags         Scheduling
// @Accept       json
// @Produce      json
// @Param        request  body      schedule.CancelRequest  true  "Cancel request"
// @Success      200      {object}  map[string]interface{}  "Cancellation confirmation"
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /cancel [post]
func (h *Scheduler) Cancel(c echo.Context) error {
	var req schedule.CancelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	}

	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_meeting_id",
			"message": "meeting_id must be a UUID",
		})
	}

	if err := h.service.Cancel(c.Request().Context(), meetingID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Meeting " + req.MeetingID + " canceled successfully.",
	})
}

// Feedback handles POST /feedback
// @Summary      Record feedback for a meeting
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Param        request  body      schedule.FeedbackRequest   true  "Feedback request"
// @Success      200      {object}  schedule.FeedbackResponse  "Stored feedback"
// @Failure      400      {object}  map[string]interface{}     "Invalid request"
// @Failure      404      {object}  map[string]interface{}     "Meeting not found"
// @Router       /feedback [post]
func (h *Scheduler) Feedback(c echo.Context) error {
	var req schedule.FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	}

	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_meeting_id",
			"message": "meeting_id must be a UUID",
		})
	}

	fb, err := h.service.Feedback(c.Request().Context(), meetingID, req.Rating, req.Comments)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, presenter.ToFeedbackResponse(fb))
}

// ListFeedback handles GET /feedback
// @Summary      List all feedback
// @Tags         Feedback
// @Produce      json
// @Success      200  {array}  schedule.FeedbackResponse  "All feedback rows"
// @Router       /feedback [get]
func (h *Scheduler) ListFeedback(c echo.Context) error {
	rows, err := h.service.ListFeedback(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	out := make([]schedule.FeedbackResponse, len(rows))
	for i, fb := range rows {
		out[i] = presenter.ToFeedbackResponse(fb)
	}
	return c.JSON(http.StatusOK, out)
}

// senderAddress resolves the effective sender for HTTP-originated requests.
// There is no authenticated mail sender here, so the X-Sender-Email header
// may override the empty default; the pipeline falls back to the authorized
// address when attendee resolution comes up empty.
func (h *Scheduler) senderAddress(c echo.Context) string {
	return c.Request().Header.Get("X-Sender-Email")
}
