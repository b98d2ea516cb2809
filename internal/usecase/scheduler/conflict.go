package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
)

// CalendarAPI is the slice of the calendar provider used by scheduling.
type CalendarAPI interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]entities.CalendarEvent, error)
	InsertEvent(ctx context.Context, title string, start time.Time, attendees []string) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// DefaultBuffer is the symmetric margin applied around a proposed window
// before testing overlap, so meetings are never scheduled back to back.
const DefaultBuffer = 15 * time.Minute

// ConflictDetector finds existing calendar events that collide with a
// proposed meeting window.
type ConflictDetector struct {
	calendar CalendarAPI
	buffer   time.Duration
}

// NewConflictDetector creates a detector. A non-positive buffer falls back
// to DefaultBuffer.
func NewConflictDetector(calendar CalendarAPI, buffer time.Duration) *ConflictDetector {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &ConflictDetector{calendar: calendar, buffer: buffer}
}

// Detect returns the events overlapping the buffered window around
// [proposedStart, proposedEnd]. Intervals are closed: an event that merely
// touches the buffered boundary still conflicts. A provider error means "no
// information", never "no conflicts"; callers must not schedule on it.
func (d *ConflictDetector) Detect(ctx context.Context, proposedStart, proposedEnd time.Time) ([]entities.CalendarEvent, error) {
	if d.calendar == nil {
		return nil, fmt.Errorf("calendar provider not configured")
	}

	bufferedStart := proposedStart.UTC().Add(-d.buffer)
	bufferedEnd := proposedEnd.UTC().Add(d.buffer)

	events, err := d.calendar.ListEvents(ctx, bufferedStart, bufferedEnd)
	if err != nil {
		return nil, err
	}

	conflicts := make([]entities.CalendarEvent, 0)
	for _, event := range events {
		if event.Overlaps(bufferedStart, bufferedEnd) {
			conflicts = append(conflicts, event)
		}
	}
	return conflicts, nil
}
