package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/email-scheduler/internal/adapter/presenter"
	schedulerUsecase "github.com/johnquangdev/email-scheduler/internal/usecase/scheduler"
)

// Meeting handles meeting read endpoints
type Meeting struct {
	service schedulerUsecase.Service
	logger  *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service schedulerUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		logger:  logger,
	}
}

// List handles GET /meetings
// @Summary      List all meetings
// @Tags         Meetings
// @Produce      json
// @Success      200  {array}  schedule.MeetingResponse  "All meetings, newest first"
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	meetings, err := h.service.ListMeetings(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, presenter.ToMeetingListResponse(meetings))
}

// Get handles GET /meeting/:id
// @Summary      Get one meeting with its feedback
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting id"
// @Success      200  {object}  schedule.MeetingDetailResponse  "Meeting detail"
// @Failure      404  {object}  map[string]interface{}          "Meeting not found"
// @Router       /meeting/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_meeting_id",
			"message": "id must be a UUID",
		})
	}

	meeting, feedback, err := h.service.GetMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, presenter.ToMeetingDetailResponse(meeting, feedback))
}
