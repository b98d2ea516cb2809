package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingStatus represents the lifecycle state of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled   MeetingStatus = "scheduled"
	MeetingStatusRescheduled MeetingStatus = "rescheduled"
	MeetingStatusPending     MeetingStatus = "pending"
	MeetingStatusCanceled    MeetingStatus = "canceled"
)

// AllMeetingStatuses lists every lifecycle state. Reschedule/cancel target
// lookups match against all of them, including canceled.
var AllMeetingStatuses = []MeetingStatus{
	MeetingStatusScheduled,
	MeetingStatusRescheduled,
	MeetingStatusPending,
	MeetingStatusCanceled,
}

// Meeting represents a scheduled meeting. Rows are never deleted; lifecycle
// history is retained via the status column only.
type Meeting struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null;index:idx_meetings_slot,priority:1" json:"title"`
	Date      string         `gorm:"type:varchar(10);not null;index:idx_meetings_slot,priority:2" json:"date"` // YYYY-MM-DD
	Time      string         `gorm:"type:varchar(5);not null;index:idx_meetings_slot,priority:3" json:"time"`  // HH:MM, wall clock interpreted as UTC
	Attendees datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"attendees"`
	Status    MeetingStatus  `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	CreatedAt time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// IsCanceled checks if the meeting has been canceled
func (m *Meeting) IsCanceled() bool {
	return m.Status == MeetingStatusCanceled
}

// StartEnd returns the meeting's 1-hour window as absolute UTC instants.
func (m *Meeting) StartEnd() (time.Time, time.Time, error) {
	start, err := ParseSlot(m.Date, m.Time)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(time.Hour), nil
}

// ParseSlot converts date (YYYY-MM-DD) and wall-clock time (HH:MM) components
// into a UTC instant. Inputs lacking a zone are always interpreted as UTC.
func ParseSlot(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04", date+"T"+clock, time.UTC)
}
