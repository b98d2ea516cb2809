package invite

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// Details carries everything needed to render a calendar invitation.
type Details struct {
	MeetingID uuid.UUID
	Title     string
	Start     time.Time
	End       time.Time
	Organizer string
	Attendees []string
}

// BuildICS renders an iCalendar REQUEST for the meeting.
func BuildICS(d Details) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//email-scheduler//EN")
	cal.Props.SetText(ical.PropMethod, "REQUEST")

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, d.MeetingID.String())
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetText(ical.PropSummary, d.Title)
	event.Props.SetDateTime(ical.PropDateTimeStart, d.Start.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, d.End.UTC())

	if d.Organizer != "" {
		organizer := ical.NewProp(ical.PropOrganizer)
		organizer.Value = "mailto:" + d.Organizer
		event.Props.Set(organizer)
	}
	for _, email := range d.Attendees {
		attendee := ical.NewProp(ical.PropAttendee)
		attendee.Value = "mailto:" + email
		event.Props.Add(attendee)
	}

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildConfirmationEmail assembles the multipart confirmation message with an
// invite.ics attachment and returns it base64url encoded, ready for the
// mailbox send endpoint.
func BuildConfirmationEmail(from string, d Details) (string, error) {
	ics, err := BuildICS(d)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=\"UTF-8\"")
	textPart, err := writer.CreatePart(textHeader)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(textPart,
		"Your meeting %q has been scheduled for %s at %s UTC.\r\n\r\nPlease find the calendar invitation attached.\r\n",
		d.Title, d.Start.UTC().Format("2006-01-02"), d.Start.UTC().Format("15:04"))

	icsHeader := textproto.MIMEHeader{}
	icsHeader.Set("Content-Type", "text/calendar; method=REQUEST; name=\"invite.ics\"")
	icsHeader.Set("Content-Disposition", "attachment; filename=\"invite.ics\"")
	icsPart, err := writer.CreatePart(icsHeader)
	if err != nil {
		return "", err
	}
	if _, err := icsPart.Write([]byte(ics)); err != nil {
		return "", err
	}

	if err := writer.Close(); err != nil {
		return "", err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(d.Attendees, ", "))
	fmt.Fprintf(&msg, "Subject: Meeting Confirmation (ID: %s)\r\n", d.MeetingID)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=%q\r\n", writer.Boundary())
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return base64.URLEncoding.EncodeToString(msg.Bytes()), nil
}
