package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
)

// stubCalendar is an in-memory CalendarAPI for tests
type stubCalendar struct {
	events    []entities.CalendarEvent
	listErr   error
	inserted  []entities.CalendarEvent
	deleted   []string
	insertErr error
	listCalls int
}

func (s *stubCalendar) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]entities.CalendarEvent, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]entities.CalendarEvent, 0)
	for _, e := range s.events {
		if e.Overlaps(timeMin, timeMax) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubCalendar) InsertEvent(ctx context.Context, title string, start time.Time, attendees []string) (string, error) {
	if s.insertErr != nil {
		return "", s.insertErr
	}
	event := entities.CalendarEvent{
		ID:        fmt.Sprintf("evt-%d", len(s.inserted)+1),
		Summary:   title,
		Start:     start,
		End:       start.Add(time.Hour),
		Attendees: attendees,
	}
	s.inserted = append(s.inserted, event)
	s.events = append(s.events, event)
	return event.ID, nil
}

func (s *stubCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	s.deleted = append(s.deleted, eventID)
	kept := s.events[:0]
	for _, e := range s.events {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return nil
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", value, err)
	}
	return ts.UTC()
}

func TestDetect_OverlapWithinBuffer(t *testing.T) {
	cal := &stubCalendar{events: []entities.CalendarEvent{
		{ID: "busy", Summary: "Standup", Start: at(t, "2026-09-01T10:00"), End: at(t, "2026-09-01T10:30")},
	}}
	detector := NewConflictDetector(cal, 15*time.Minute)

	conflicts, err := detector.Detect(context.Background(), at(t, "2026-09-01T10:00"), at(t, "2026-09-01T11:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0].Summary != "Standup" {
		t.Fatalf("expected the standup conflict, got %v", conflicts)
	}
}

func TestDetect_EventTouchingBufferBoundaryConflicts(t *testing.T) {
	// Event ends exactly at window start minus buffer. Closed intervals, so
	// touching still counts.
	cal := &stubCalendar{events: []entities.CalendarEvent{
		{ID: "edge", Summary: "Edge", Start: at(t, "2026-09-01T09:00"), End: at(t, "2026-09-01T09:45")},
	}}
	detector := NewConflictDetector(cal, 15*time.Minute)

	conflicts, err := detector.Detect(context.Background(), at(t, "2026-09-01T10:00"), at(t, "2026-09-01T11:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected boundary event to conflict, got %d conflicts", len(conflicts))
	}
}

func TestDetect_EventOutsideBufferDoesNotConflict(t *testing.T) {
	cal := &stubCalendar{events: []entities.CalendarEvent{
		{ID: "early", Summary: "Early", Start: at(t, "2026-09-01T08:00"), End: at(t, "2026-09-01T09:44")},
	}}
	detector := NewConflictDetector(cal, 15*time.Minute)

	conflicts, err := detector.Detect(context.Background(), at(t, "2026-09-01T10:00"), at(t, "2026-09-01T11:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %v", conflicts)
	}
}

func TestDetect_ProviderErrorIsNotNoConflicts(t *testing.T) {
	cal := &stubCalendar{listErr: fmt.Errorf("upstream down")}
	detector := NewConflictDetector(cal, 15*time.Minute)

	conflicts, err := detector.Detect(context.Background(), at(t, "2026-09-01T10:00"), at(t, "2026-09-01T11:00"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if conflicts != nil {
		t.Fatalf("expected nil conflicts on error, got %v", conflicts)
	}
}

func TestDetect_NilCalendarErrors(t *testing.T) {
	detector := NewConflictDetector(nil, 0)
	if _, err := detector.Detect(context.Background(), time.Now(), time.Now().Add(time.Hour)); err == nil {
		t.Fatal("expected an error without a calendar provider")
	}
}
