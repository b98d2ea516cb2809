package errors

// ErrorCode identifies an error category on the wire.
type ErrorCode string

const (
	ErrorCode_INTERNAL           ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT   ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_INVALID_PAYLOAD    ErrorCode = "INVALID_PAYLOAD"
	ErrorCode_NOT_FOUND          ErrorCode = "NOT_FOUND"
	ErrorCode_VALIDATION_FAILED  ErrorCode = "VALIDATION_FAILED"
	ErrorCode_PARSE_FAILED       ErrorCode = "PARSE_FAILED"
	ErrorCode_CALENDAR_FAILED    ErrorCode = "CALENDAR_FAILED"
	ErrorCode_MAILBOX_FAILED     ErrorCode = "MAILBOX_FAILED"
	ErrorCode_AI_SERVICE_FAILED  ErrorCode = "AI_SERVICE_FAILED"
	ErrorCode_DB_QUERY_FAILED    ErrorCode = "DB_QUERY_FAILED"
	ErrorCode_CACHE_FAILED       ErrorCode = "CACHE_FAILED"
	ErrorCode_SLOT_CONFLICT      ErrorCode = "SLOT_CONFLICT"
	ErrorCode_STARTUP_FAILED     ErrorCode = "STARTUP_FAILED"
)

// String returns the wire form of the code.
func (c ErrorCode) String() string {
	return string(c)
}
