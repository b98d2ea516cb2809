package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/email-scheduler/internal/adapter/dto/insights"
	"github.com/johnquangdev/email-scheduler/internal/adapter/presenter"
	"github.com/johnquangdev/email-scheduler/internal/usecase/analysis"
	"github.com/johnquangdev/email-scheduler/internal/usecase/ingest"
)

// Insights handles the derived-data endpoints (tasks, sentiment) and the
// manual ingestion trigger.
type Insights struct {
	analysis *analysis.Service
	ingest   *ingest.Service
	logger   *zap.Logger
}

// NewInsightsHandler creates a new insights handler. ingestSvc may be nil
// when the mailbox integration is not configured.
func NewInsightsHandler(analysisSvc *analysis.Service, ingestSvc *ingest.Service, logger *zap.Logger) *Insights {
	return &Insights{
		analysis: analysisSvc,
		ingest:   ingestSvc,
		logger:   logger,
	}
}

// Tasks handles GET /tasks
// @Summary      List tasks extracted from emails
// @Tags         Insights
// @Produce      json
// @Success      200  {array}  insights.TaskResponse  "All extracted tasks"
// @Router       /tasks [get]
func (h *Insights) Tasks(c echo.Context) error {
	tasks, err := h.analysis.ListTasks(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	out := make([]insights.TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = presenter.ToTaskResponse(t)
	}
	return c.JSON(http.StatusOK, out)
}

// Sentiments handles GET /sentiment/emails
// @Summary      List sentiment analysis results for processed emails
// @Tags         Insights
// @Produce      json
// @Success      200  {array}  insights.SentimentResponse  "All sentiment records"
// @Router       /sentiment/emails [get]
func (h *Insights) Sentiments(c echo.Context) error {
	records, err := h.analysis.ListSentiments(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	out := make([]insights.SentimentResponse, len(records))
	for i, r := range records {
		out[i] = presenter.ToSentimentResponse(r)
	}
	return c.JSON(http.StatusOK, out)
}

// ProcessEmails handles POST /process_emails
// @Summary      Trigger one manual mailbox sweep
// @Tags         Insights
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "Sweep started"
// @Failure      503  {object}  map[string]interface{}  "Mailbox integration not configured"
// @Router       /process_emails [post]
func (h *Insights) ProcessEmails(c echo.Context) error {
	if h.ingest == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"error":   "ingestion_unavailable",
			"message": "email ingestion is not configured",
		})
	}
	h.ingest.Sweep(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Email processing triggered.",
	})
}
