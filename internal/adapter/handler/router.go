package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/email-scheduler/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg       *config.Config
	scheduler *Scheduler
	meeting   *Meeting
	insights  *Insights
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, scheduler *Scheduler, meeting *Meeting, insights *Insights) *Router {
	return &Router{
		cfg:       cfg,
		scheduler: scheduler,
		meeting:   meeting,
		insights:  insights,
	}
}

// Setup configures all application routes. Routes live at the root, matching
// the public surface the clients already use.
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	e.POST("/schedule", rt.scheduler.Schedule)
	e.POST("/reschedule", rt.scheduler.Reschedule)
	e.POST("/cancel", rt.scheduler.Cancel)
	e.POST("/feedback", rt.scheduler.Feedback)
	e.GET("/feedback", rt.scheduler.ListFeedback)

	e.GET("/meetings", rt.meeting.List)
	e.GET("/meeting/:id", rt.meeting.Get)

	e.GET("/tasks", rt.insights.Tasks)
	e.GET("/sentiment/emails", rt.insights.Sentiments)
	e.POST("/process_emails", rt.insights.ProcessEmails)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
