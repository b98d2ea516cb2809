package ingest

import "context"

// CursorStore persists the mailbox history watermark. The watermark only
// ever moves forward; Init seeds it exactly once so restarts never rewind
// into already-processed history.
type CursorStore interface {
	Load(ctx context.Context) (uint64, error)
	Init(ctx context.Context, value uint64) error
	Advance(ctx context.Context, value uint64) error
}
