package invite

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testDetails() Details {
	return Details{
		MeetingID: uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Title:     "Quarterly Planning",
		Start:     time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
		Organizer: "owner@example.com",
		Attendees: []string{"a@example.com", "b@example.com"},
	}
}

func TestBuildICS(t *testing.T) {
	ics, err := BuildICS(testDetails())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:REQUEST",
		"BEGIN:VEVENT",
		"UID:11111111-2222-3333-4444-555555555555",
		"SUMMARY:Quarterly Planning",
		"DTSTART:20260901T100000Z",
		"DTEND:20260901T110000Z",
		"ORGANIZER:mailto:owner@example.com",
		"ATTENDEE:mailto:a@example.com",
		"ATTENDEE:mailto:b@example.com",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ics, want) {
			t.Fatalf("ICS missing %q:\n%s", want, ics)
		}
	}
}

func TestBuildConfirmationEmail(t *testing.T) {
	raw, err := BuildConfirmationEmail("owner@example.com", testDetails())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("message is not valid base64url: %v", err)
	}
	msg := string(decoded)

	for _, want := range []string{
		"From: owner@example.com",
		"To: a@example.com, b@example.com",
		"Subject: Meeting Confirmation (ID: 11111111-2222-3333-4444-555555555555)",
		"Content-Type: multipart/mixed",
		"text/calendar; method=REQUEST",
		"filename=\"invite.ics\"",
		"BEGIN:VCALENDAR",
		"scheduled for 2026-09-01 at 10:00 UTC",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("email missing %q:\n%s", want, msg)
		}
	}
}
