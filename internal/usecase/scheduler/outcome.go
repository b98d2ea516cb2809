package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
)

// OutcomeStatus classifies the result of running one scheduling request.
type OutcomeStatus string

const (
	OutcomeScheduled   OutcomeStatus = "scheduled"
	OutcomeRescheduled OutcomeStatus = "rescheduled"
	OutcomeConflict    OutcomeStatus = "conflict"
	OutcomeSkipped     OutcomeStatus = "skipped"
	OutcomeNotFound    OutcomeStatus = "not_found"
	OutcomeFailed      OutcomeStatus = "failed"
)

// Outcome is the first-class result of the intent pipeline. Conflict,
// skipped and failed outcomes carry no meeting; a conflict outcome carries
// the blocking events and any alternative slots found.
type Outcome struct {
	Status      OutcomeStatus            `json:"status"`
	Message     string                   `json:"message"`
	Meeting     *entities.Meeting        `json:"meeting,omitempty"`
	Conflicts   []entities.CalendarEvent `json:"conflicts,omitempty"`
	Suggestions []time.Time              `json:"suggestions,omitempty"`
}

func skipped(kind entities.IntentKind, action string) *Outcome {
	return &Outcome{
		Status:  OutcomeSkipped,
		Message: fmt.Sprintf("Intent '%s' not recognized for %s. No email sent.", kind, action),
	}
}

func failed(message string) *Outcome {
	return &Outcome{Status: OutcomeFailed, Message: message}
}

// conflictOutcome renders the blocking events and suggestions the way the
// confirmation emails phrase them.
func conflictOutcome(conflicts []entities.CalendarEvent, suggestions []time.Time) *Outcome {
	var sb strings.Builder
	sb.WriteString("The requested time conflicts with existing meetings:\n")
	for _, c := range conflicts {
		fmt.Fprintf(&sb, "- %s (%s to %s)\n",
			c.Summary,
			c.Start.UTC().Format("2006-01-02 15:04"),
			c.End.UTC().Format("15:04"))
	}
	if len(suggestions) > 0 {
		sb.WriteString("\nSuggested alternative times:\n")
		for _, s := range suggestions {
			fmt.Fprintf(&sb, "- %s\n", s.UTC().Format("2006-01-02 15:04"))
		}
	}
	return &Outcome{
		Status:      OutcomeConflict,
		Message:     sb.String(),
		Conflicts:   conflicts,
		Suggestions: suggestions,
	}
}
