package scheduler

import (
	"context"
	"time"
)

const maxSuggestions = 3

// sameDayHours are the common meeting hours tried on the requested date,
// in UTC.
var sameDayHours = []int{9, 10, 11, 14, 15, 16}

// Suggester proposes alternative 1-hour slots when a requested window
// conflicts.
type Suggester struct {
	detector *ConflictDetector
	now      func() time.Time
}

// NewSuggester creates a suggester backed by the given detector
func NewSuggester(detector *ConflictDetector) *Suggester {
	return &Suggester{
		detector: detector,
		now:      time.Now,
	}
}

// Suggest returns up to 3 conflict-free alternatives for the base slot, in
// discovery order. First the same time on the next 3 days, then common hours
// on the requested date itself. The search is greedy, not exhaustive, and a
// candidate that cannot be verified against the calendar is skipped rather
// than offered.
func (s *Suggester) Suggest(ctx context.Context, base time.Time) []time.Time {
	base = base.UTC()
	suggestions := make([]time.Time, 0, maxSuggestions)

	for i := 1; i <= 3; i++ {
		candidate := base.AddDate(0, 0, i)
		conflicts, err := s.detector.Detect(ctx, candidate, candidate.Add(time.Hour))
		if err != nil || len(conflicts) > 0 {
			continue
		}
		suggestions = append(suggestions, candidate)
		if len(suggestions) >= maxSuggestions {
			return suggestions
		}
	}

	year, month, day := base.Date()
	for _, hour := range sameDayHours {
		candidate := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
		if !candidate.After(s.now().UTC()) {
			continue
		}
		conflicts, err := s.detector.Detect(ctx, candidate, candidate.Add(time.Hour))
		if err != nil || len(conflicts) > 0 {
			continue
		}
		suggestions = append(suggestions, candidate)
		if len(suggestions) >= maxSuggestions {
			break
		}
	}

	return suggestions
}
