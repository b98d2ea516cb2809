package entities

import "time"

// CalendarEvent is a remote calendar event as seen by conflict detection.
// Start and End are absolute UTC instants.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Attendees []string  `json:"attendees,omitempty"`
}

// Overlaps reports whether the event touches the closed interval
// [start, end]. Touching boundaries count as overlapping.
func (e CalendarEvent) Overlaps(start, end time.Time) bool {
	return !e.Start.After(end) && !e.End.Before(start)
}
