package googleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
)

const calendarBaseURL = "https://www.googleapis.com/calendar/v3"

// CalendarClient talks to the Google Calendar v3 API for the primary
// calendar of the authorized account.
type CalendarClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewCalendarClient creates a calendar client over an authorized HTTP client
func NewCalendarClient(httpClient *http.Client) *CalendarClient {
	return &CalendarClient{httpClient: httpClient, baseURL: calendarBaseURL}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *CalendarClient) WithBaseURL(base string) *CalendarClient {
	c.baseURL = base
	return c
}

type calendarEventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type calendarAttendee struct {
	Email string `json:"email"`
}

type calendarEvent struct {
	ID        string             `json:"id,omitempty"`
	Summary   string             `json:"summary,omitempty"`
	Start     *calendarEventTime `json:"start,omitempty"`
	End       *calendarEventTime `json:"end,omitempty"`
	Attendees []calendarAttendee `json:"attendees,omitempty"`
}

type calendarEventList struct {
	Items []calendarEvent `json:"items"`
}

// ListEvents returns the single events overlapping [timeMin, timeMax] on the
// primary calendar. All-day events carry only a date; they are expanded to
// midnight boundaries in UTC.
func (c *CalendarClient) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]entities.CalendarEvent, error) {
	q := url.Values{}
	q.Set("timeMin", timeMin.UTC().Format(time.RFC3339))
	q.Set("timeMax", timeMax.UTC().Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")

	endpoint := fmt.Sprintf("%s/calendars/primary/events?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("calendar list returned status %d: %s", resp.StatusCode, string(body))
	}

	var list calendarEventList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}

	events := make([]entities.CalendarEvent, 0, len(list.Items))
	for _, item := range list.Items {
		start, err := parseEventTime(item.Start)
		if err != nil {
			continue
		}
		end, err := parseEventTime(item.End)
		if err != nil {
			continue
		}
		attendees := make([]string, 0, len(item.Attendees))
		for _, a := range item.Attendees {
			attendees = append(attendees, a.Email)
		}
		events = append(events, entities.CalendarEvent{
			ID:        item.ID,
			Summary:   item.Summary,
			Start:     start,
			End:       end,
			Attendees: attendees,
		})
	}
	return events, nil
}

// InsertEvent creates a 1-hour event on the primary calendar and returns the
// remote event id.
func (c *CalendarClient) InsertEvent(ctx context.Context, title string, start time.Time, attendees []string) (string, error) {
	body := calendarEvent{
		Summary: title,
		Start: &calendarEventTime{
			DateTime: start.UTC().Format("2006-01-02T15:04:05"),
			TimeZone: "UTC",
		},
		End: &calendarEventTime{
			DateTime: start.Add(time.Hour).UTC().Format("2006-01-02T15:04:05"),
			TimeZone: "UTC",
		},
	}
	for _, email := range attendees {
		body.Attendees = append(body.Attendees, calendarAttendee{Email: email})
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/calendars/primary/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("calendar insert returned status %d: %s", resp.StatusCode, string(raw))
	}

	var created calendarEvent
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// DeleteEvent removes an event from the primary calendar. Deleting an already
// removed event is not an error.
func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	endpoint := fmt.Sprintf("%s/calendars/primary/events/%s", c.baseURL, url.PathEscape(eventID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound && resp.StatusCode != http.StatusGone {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("calendar delete returned status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

func parseEventTime(t *calendarEventTime) (time.Time, error) {
	if t == nil {
		return time.Time{}, fmt.Errorf("missing event time")
	}
	if t.DateTime != "" {
		if ts, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return ts.UTC(), nil
		}
		// Some responses omit the zone suffix; treat those as UTC.
		return time.ParseInLocation("2006-01-02T15:04:05", t.DateTime, time.UTC)
	}
	if t.Date != "" {
		return time.ParseInLocation("2006-01-02", t.Date, time.UTC)
	}
	return time.Time{}, fmt.Errorf("missing event time")
}
