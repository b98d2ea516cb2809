package entities

// IntentKind is the scheduling action extracted from free text.
type IntentKind string

const (
	IntentSchedule   IntentKind = "schedule"
	IntentReschedule IntentKind = "reschedule"
)

// Intent is the structured representation of a natural-language scheduling
// request as returned by the LLM extraction call. Fields are only trusted
// after the validated decode in the scheduler parser.
type Intent struct {
	Kind           IntentKind `json:"intent"`
	Title          string     `json:"title"`
	OldDate        string     `json:"old_date"` // reschedule only
	OldTime        string     `json:"old_time"` // reschedule only
	NewDate        string     `json:"new_date"`
	NewTime        string     `json:"new_time"`
	Attendees      []string   `json:"attendees"`
	SenderRequired bool       `json:"is_sender_required"`
}
