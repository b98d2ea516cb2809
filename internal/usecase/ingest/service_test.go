package ingest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
	"github.com/johnquangdev/email-scheduler/internal/usecase/analysis"
	"github.com/johnquangdev/email-scheduler/internal/usecase/scheduler"
)

type stubMailbox struct {
	mu         sync.Mutex
	historyID  uint64
	historyErr error
	ids        []string
	watermark  uint64
	listErr    error
	messages   map[string]*Message
	getErr     error
	listCalls  int
	block      chan struct{}
}

func (m *stubMailbox) CurrentHistoryID(ctx context.Context) (uint64, error) {
	if m.historyErr != nil {
		return 0, m.historyErr
	}
	return m.historyID, nil
}

func (m *stubMailbox) ListNewMessages(ctx context.Context, since uint64) ([]string, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.ids, m.watermark, nil
}

func (m *stubMailbox) GetMessage(ctx context.Context, id string) (*Message, error) {
	if m.block != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-m.block:
		}
	}
	if m.getErr != nil {
		return nil, m.getErr
	}
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s not found", id)
	}
	return msg, nil
}

type memCursor struct {
	mu       sync.Mutex
	value    uint64
	seeded   bool
	initErr  error
	advances []uint64
}

func (c *memCursor) Load(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, nil
}

func (c *memCursor) Init(ctx context.Context, value uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initErr != nil {
		return c.initErr
	}
	if !c.seeded {
		c.value = value
		c.seeded = true
	}
	return nil
}

func (c *memCursor) Advance(ctx context.Context, value uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advances = append(c.advances, value)
	if value > c.value {
		c.value = value
	}
	return nil
}

type memProcessed struct {
	mu        sync.Mutex
	marked    map[string]bool
	existsErr error
}

func (p *memProcessed) Exists(ctx context.Context, messageID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.existsErr != nil {
		return false, p.existsErr
	}
	return p.marked[messageID], nil
}

func (p *memProcessed) Insert(ctx context.Context, messageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.marked == nil {
		p.marked = make(map[string]bool)
	}
	p.marked[messageID] = true
	return nil
}

func (p *memProcessed) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.marked)
}

type stubPipeline struct {
	mu      sync.Mutex
	handled []string
	outcome *scheduler.Outcome
}

func (s *stubPipeline) Handle(ctx context.Context, text, sender string) *scheduler.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handled = append(s.handled, text)
	if s.outcome != nil {
		return s.outcome
	}
	return &scheduler.Outcome{Status: scheduler.OutcomeSkipped, Message: "no intent"}
}

func (s *stubPipeline) Schedule(ctx context.Context, text, sender string) *scheduler.Outcome {
	return s.Handle(ctx, text, sender)
}

func (s *stubPipeline) Reschedule(ctx context.Context, text, sender string) *scheduler.Outcome {
	return s.Handle(ctx, text, sender)
}

func (s *stubPipeline) Cancel(ctx context.Context, meetingID uuid.UUID) error { return nil }

func (s *stubPipeline) Feedback(ctx context.Context, meetingID uuid.UUID, rating int, comments string) (*entities.Feedback, error) {
	return nil, nil
}

func (s *stubPipeline) ListMeetings(ctx context.Context) ([]*entities.Meeting, error) {
	return nil, nil
}

func (s *stubPipeline) GetMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, []*entities.Feedback, error) {
	return nil, nil, nil
}

func (s *stubPipeline) ListFeedback(ctx context.Context) ([]*entities.Feedback, error) {
	return nil, nil
}

func (s *stubPipeline) handledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handled)
}

type memSentimentRepo struct {
	mu      sync.Mutex
	records []*entities.SentimentRecord
	saveErr error
}

func (r *memSentimentRepo) Save(ctx context.Context, record *entities.SentimentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records = append(r.records, record)
	return nil
}

func (r *memSentimentRepo) List(ctx context.Context) ([]*entities.SentimentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records, nil
}

type memTaskRepo struct {
	mu    sync.Mutex
	tasks []*entities.ExtractedTask
}

func (r *memTaskRepo) InsertBatch(ctx context.Context, tasks []*entities.ExtractedTask) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, tasks...)
	return len(tasks), nil
}

func (r *memTaskRepo) List(ctx context.Context) ([]*entities.ExtractedTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tasks, nil
}

type stubTaskLLM struct {
	payload string
	err     error
}

func (s *stubTaskLLM) ExtractTasks(ctx context.Context, body string) (string, error) {
	return s.payload, s.err
}

type fixture struct {
	service   *Service
	mailbox   *stubMailbox
	cursor    *memCursor
	processed *memProcessed
	pipeline  *stubPipeline
	sentiment *memSentimentRepo
}

func newFixture(t *testing.T, mailbox *stubMailbox, taskLLM *stubTaskLLM) *fixture {
	t.Helper()
	cursor := &memCursor{}
	processed := &memProcessed{}
	pipeline := &stubPipeline{}
	sentiments := &memSentimentRepo{}
	analysisSvc := analysis.NewService(sentiments, &memTaskRepo{}, taskLLM, zap.NewNop())
	service := NewService(mailbox, cursor, processed, pipeline, analysisSvc, time.Second, time.Minute, zap.NewNop())
	return &fixture{
		service:   service,
		mailbox:   mailbox,
		cursor:    cursor,
		processed: processed,
		pipeline:  pipeline,
		sentiment: sentiments,
	}
}

func TestSweep_ProcessesAndMarksMessages(t *testing.T) {
	mailbox := &stubMailbox{
		historyID: 100,
		ids:       []string{"m1", "m2"},
		watermark: 120,
		messages: map[string]*Message{
			"m1": {ID: "m1", Subject: "Hi", From: "a@example.com", Body: "Great work, thanks!"},
			"m2": {ID: "m2", Subject: "Plan", From: "b@example.com", Body: "Let us plan next week."},
		},
	}
	f := newFixture(t, mailbox, &stubTaskLLM{payload: "[]"})

	f.service.Sweep(context.Background())
	f.service.Stop()

	if f.pipeline.handledCount() != 2 {
		t.Fatalf("expected 2 messages through the pipeline, got %d", f.pipeline.handledCount())
	}
	if f.processed.count() != 2 {
		t.Fatalf("expected 2 processed markers, got %d", f.processed.count())
	}
	if got := len(f.sentiment.records); got != 2 {
		t.Fatalf("expected 2 sentiment records, got %d", got)
	}
	if f.cursor.value != 120 {
		t.Fatalf("expected cursor advanced to 120, got %d", f.cursor.value)
	}
}

func TestSweep_SkipsAlreadyProcessedMessages(t *testing.T) {
	mailbox := &stubMailbox{
		ids:       []string{"m1"},
		watermark: 50,
		messages: map[string]*Message{
			"m1": {ID: "m1", Body: "hello"},
		},
	}
	f := newFixture(t, mailbox, &stubTaskLLM{payload: "[]"})
	if err := f.processed.Insert(context.Background(), "m1"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	f.service.Sweep(context.Background())
	f.service.Stop()

	if f.pipeline.handledCount() != 0 {
		t.Fatalf("expected no pipeline calls for a processed message, got %d", f.pipeline.handledCount())
	}
	if f.cursor.value != 50 {
		t.Fatalf("expected cursor still advanced, got %d", f.cursor.value)
	}
}

func TestSweep_InflightGateBlocksDuplicateDispatch(t *testing.T) {
	mailbox := &stubMailbox{
		ids:       []string{"m1"},
		watermark: 10,
		messages: map[string]*Message{
			"m1": {ID: "m1", Body: "hello"},
		},
	}
	f := newFixture(t, mailbox, &stubTaskLLM{payload: "[]"})

	// Claim the message before sweeping; the sweep must not dispatch it.
	f.service.inflight.SetNX("inflight:m1", "1", time.Minute)
	f.service.Sweep(context.Background())
	f.service.Stop()

	if f.pipeline.handledCount() != 0 {
		t.Fatalf("expected the inflight gate to block dispatch, got %d calls", f.pipeline.handledCount())
	}
}

func TestSweep_HardErrorLeavesMessageUnmarked(t *testing.T) {
	mailbox := &stubMailbox{
		ids:       []string{"m1"},
		watermark: 10,
		getErr:    fmt.Errorf("mailbox unavailable"),
	}
	f := newFixture(t, mailbox, &stubTaskLLM{payload: "[]"})

	f.service.Sweep(context.Background())
	f.service.Stop()

	if f.processed.count() != 0 {
		t.Fatal("expected no processed marker after a fetch failure")
	}
	if f.pipeline.handledCount() != 0 {
		t.Fatal("expected no pipeline call after a fetch failure")
	}
}

func TestSweep_TaskExtractionFailureIsSoft(t *testing.T) {
	mailbox := &stubMailbox{
		ids:       []string{"m1"},
		watermark: 10,
		messages: map[string]*Message{
			"m1": {ID: "m1", Body: "please schedule a meeting"},
		},
	}
	f := newFixture(t, mailbox, &stubTaskLLM{err: fmt.Errorf("model overloaded")})

	f.service.Sweep(context.Background())
	f.service.Stop()

	if f.pipeline.handledCount() != 1 {
		t.Fatalf("expected the scheduling pipeline to still run, got %d calls", f.pipeline.handledCount())
	}
	if f.processed.count() != 1 {
		t.Fatal("expected the message marked processed despite the task extraction failure")
	}
}

func TestSweep_CallerCancelDoesNotAbortDispatchedMessages(t *testing.T) {
	mailbox := &stubMailbox{
		ids:       []string{"m1"},
		watermark: 120,
		block:     make(chan struct{}),
		messages: map[string]*Message{
			"m1": {ID: "m1", Subject: "Hi", From: "a@example.com", Body: "hello"},
		},
	}
	f := newFixture(t, mailbox, &stubTaskLLM{payload: "[]"})
	f.cursor.value = 100

	// A manual trigger's request context dies as soon as the response is
	// written. The handler dispatched for m1 is held on the mailbox until
	// after that cancellation; it must still complete, because the advanced
	// cursor means the message will never be re-delivered.
	reqCtx, cancel := context.WithCancel(context.Background())
	f.service.Sweep(reqCtx)
	cancel()
	close(mailbox.block)
	f.service.Stop()

	if f.pipeline.handledCount() != 1 {
		t.Fatalf("expected the message through the pipeline, got %d calls", f.pipeline.handledCount())
	}
	if f.processed.count() != 1 {
		t.Fatal("expected the message marked processed after the trigger context was canceled")
	}
	if f.cursor.value != 120 {
		t.Fatalf("expected cursor advanced to 120, got %d", f.cursor.value)
	}
}

func TestSweep_MailboxListFailureDoesNotAdvanceCursor(t *testing.T) {
	mailbox := &stubMailbox{listErr: fmt.Errorf("history expired")}
	f := newFixture(t, mailbox, &stubTaskLLM{payload: "[]"})
	f.cursor.value = 40

	f.service.Sweep(context.Background())
	f.service.Stop()

	if len(f.cursor.advances) != 0 {
		t.Fatalf("expected no cursor advance, got %v", f.cursor.advances)
	}
}

func TestSweep_StaleWatermarkDoesNotRewindCursor(t *testing.T) {
	mailbox := &stubMailbox{watermark: 30}
	f := newFixture(t, mailbox, &stubTaskLLM{payload: "[]"})
	f.cursor.value = 40

	f.service.Sweep(context.Background())
	f.service.Stop()

	if len(f.cursor.advances) != 0 {
		t.Fatalf("expected no advance for a stale watermark, got %v", f.cursor.advances)
	}
	if f.cursor.value != 40 {
		t.Fatalf("expected cursor unchanged at 40, got %d", f.cursor.value)
	}
}

func TestStart_SeedsWatermarkOnce(t *testing.T) {
	mailbox := &stubMailbox{historyID: 500}
	f := newFixture(t, mailbox, &stubTaskLLM{payload: "[]"})
	f.cursor.value = 450
	f.cursor.seeded = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := f.service.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.service.Stop()

	// An already-seeded cursor keeps its value.
	if f.cursor.value != 450 {
		t.Fatalf("expected seeded cursor preserved, got %d", f.cursor.value)
	}
}

func TestStart_FailsWhenMailboxUnreachable(t *testing.T) {
	mailbox := &stubMailbox{historyErr: fmt.Errorf("auth expired")}
	f := newFixture(t, mailbox, &stubTaskLLM{payload: "[]"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.service.Start(ctx); err == nil {
		t.Fatal("expected startup to fail when the mailbox is unreachable")
	}
}
