package scheduler

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// IsValidEmail reports whether the string looks like a mail address.
func IsValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// AttendeeNormalizer resolves extracted attendee references into concrete
// mail addresses.
type AttendeeNormalizer struct {
	defaultAddr string
	logger      *zap.Logger
}

// NewAttendeeNormalizer creates a normalizer. defaultAddr is the authorized
// account address used for "me" and as the last-resort attendee.
func NewAttendeeNormalizer(defaultAddr string, logger *zap.Logger) *AttendeeNormalizer {
	return &AttendeeNormalizer{defaultAddr: defaultAddr, logger: logger}
}

// Normalize validates and dedups attendee entries. "me" maps to the default
// address, invalid entries are dropped with a warning, the sender is added
// when senderRequired is set, and an empty result falls back to the default
// address. The result is sorted and never empty.
func (n *AttendeeNormalizer) Normalize(raw []string, sender string, senderRequired bool) []string {
	valid := make(map[string]bool)

	for _, attendee := range raw {
		attendee = strings.TrimSpace(attendee)
		if strings.EqualFold(attendee, "me") {
			valid[n.defaultAddr] = true
			continue
		}
		if IsValidEmail(attendee) {
			valid[attendee] = true
			continue
		}
		if n.logger != nil {
			n.logger.Warn("invalid attendee email or ambiguous reference, ignoring",
				zap.String("attendee", attendee))
		}
	}

	if senderRequired && sender != "" {
		valid[sender] = true
	}

	if len(valid) == 0 {
		valid[n.defaultAddr] = true
		if n.logger != nil {
			n.logger.Info("no valid attendees provided, using default address",
				zap.String("default", n.defaultAddr))
		}
	}

	out := make([]string, 0, len(valid))
	for addr := range valid {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}
