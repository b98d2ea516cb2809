package ingest

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/email-scheduler/errors"
	"github.com/johnquangdev/email-scheduler/internal/domain/repositories"
	"github.com/johnquangdev/email-scheduler/internal/infrastructure/cache"
	"github.com/johnquangdev/email-scheduler/internal/usecase/analysis"
	"github.com/johnquangdev/email-scheduler/internal/usecase/scheduler"
	"github.com/johnquangdev/email-scheduler/pkg/jobcontext"
)

// Message is an inbound mailbox message as the ingestion pipeline sees it.
type Message struct {
	ID      string
	Subject string
	From    string
	Body    string
}

// MailboxAPI is the slice of the mail provider used by ingestion.
type MailboxAPI interface {
	CurrentHistoryID(ctx context.Context) (uint64, error)
	ListNewMessages(ctx context.Context, since uint64) ([]string, uint64, error)
	GetMessage(ctx context.Context, id string) (*Message, error)
}

// inflightTTL bounds how long a claimed message blocks re-dispatch if its
// goroutine dies without cleaning up.
const inflightTTL = 10 * time.Minute

// Service is the email ingestion loop: a fast poll and a slow sweep both
// funnel into the same fetch-and-dispatch path, and each new message runs
// the sentiment, task and scheduling pipeline exactly once.
type Service struct {
	mailbox   MailboxAPI
	cursor    CursorStore
	processed repositories.ProcessedMessageRepository
	pipeline  scheduler.Service
	analysis  *analysis.Service
	inflight  *cache.MemoryStore
	fastPoll  time.Duration
	sweep     time.Duration
	logger    *zap.Logger

	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewService wires the ingestion loop
func NewService(
	mailbox MailboxAPI,
	cursor CursorStore,
	processed repositories.ProcessedMessageRepository,
	pipeline scheduler.Service,
	analysisSvc *analysis.Service,
	fastPoll, sweep time.Duration,
	logger *zap.Logger,
) *Service {
	if fastPoll <= 0 {
		fastPoll = 10 * time.Second
	}
	if sweep <= 0 {
		sweep = 300 * time.Second
	}
	return &Service{
		mailbox:   mailbox,
		cursor:    cursor,
		processed: processed,
		pipeline:  pipeline,
		analysis:  analysisSvc,
		inflight:  cache.NewMemoryStore(),
		fastPoll:  fastPoll,
		sweep:     sweep,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start verifies mailbox access, seeds the watermark and launches the poll
// loops. A failed startup returns an error and leaves nothing running; the
// HTTP surface is expected to stay up without ingestion.
func (s *Service) Start(ctx context.Context) error {
	seed := func() error {
		historyID, err := s.mailbox.CurrentHistoryID(ctx)
		if err != nil {
			return err
		}
		return s.cursor.Init(ctx, historyID)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(seed, backoff.WithContext(policy, ctx)); err != nil {
		return apperrors.ErrStartup("email ingestion", err)
	}

	s.wg.Add(1)
	go s.run(ctx)
	s.logger.Info("email ingestion started",
		zap.Duration("fast_poll", s.fastPoll), zap.Duration("sweep", s.sweep))
	return nil
}

// Stop halts the loops and waits for in-flight message handlers.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *Service) run(ctx context.Context) {
	defer s.wg.Done()

	fast := time.NewTicker(s.fastPoll)
	defer fast.Stop()
	slow := time.NewTicker(s.sweep)
	defer slow.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-fast.C:
			s.Sweep(ctx)
		case <-slow.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one fetch-and-dispatch pass. The cursor is advanced to the
// provider's returned watermark unconditionally; messages that fail are
// recovered only through re-delivery or a manual sweep, never by rewinding.
func (s *Service) Sweep(ctx context.Context) {
	since, err := s.cursor.Load(ctx)
	if err != nil {
		s.logger.Error("could not load ingestion cursor", zap.Error(err))
		return
	}

	ids, watermark, err := s.mailbox.ListNewMessages(ctx, since)
	if err != nil {
		s.logger.Warn("mailbox history fetch failed", zap.Error(err))
		return
	}

	// Message handlers outlive the sweep that dispatched them. The manual
	// trigger hands in a request-scoped context that is canceled as soon as
	// the response is written, so dispatch detaches from the caller's
	// cancellation; the per-job timeout still bounds each handler.
	runCtx := context.WithoutCancel(ctx)
	for _, id := range ids {
		if !s.inflight.SetNX("inflight:"+id, "1", inflightTTL) {
			continue
		}
		s.wg.Add(1)
		go s.processMessage(runCtx, id)
	}

	if watermark > since {
		if err := s.cursor.Advance(ctx, watermark); err != nil {
			s.logger.Error("could not advance ingestion cursor",
				zap.Uint64("watermark", watermark), zap.Error(err))
		}
	}
}

func (s *Service) processMessage(parent context.Context, id string) {
	defer s.wg.Done()
	defer s.inflight.Delete("inflight:" + id)

	ctx, cancel := jobcontext.JobBegin(parent, id, "email_ingest")
	defer cancel()

	err := jobcontext.Run(ctx, func(ctx context.Context) error {
		return s.handle(ctx, id)
	})
	if err != nil {
		s.logger.Error("message pipeline failed",
			zap.String("message_id", id), zap.Error(err))
	}
}

// handle runs the full pipeline for one message. The processed marker is
// written only after every stage has had its chance; a hard error leaves the
// message unmarked so a later sweep can retry it. Scheduling outcomes of any
// status, including conflict and failure, count as handled.
func (s *Service) handle(ctx context.Context, id string) error {
	exists, err := s.processed.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	msg, err := s.mailbox.GetMessage(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.analysis.AnalyzeSentiment(ctx, msg.ID, msg.Subject, msg.Body); err != nil {
		return err
	}

	if _, err := s.analysis.ExtractTasks(ctx, msg.ID, msg.Body); err != nil {
		var appErr apperrors.AppError
		if stderrors.As(err, &appErr) && appErr.Code == apperrors.ErrorCode_AI_SERVICE_FAILED {
			s.logger.Warn("task extraction unavailable",
				zap.String("message_id", id), zap.Error(err))
		} else {
			return err
		}
	}

	outcome := s.pipeline.Handle(ctx, msg.Body, msg.From)
	s.logger.Info("message handled",
		zap.String("message_id", id),
		zap.String("status", string(outcome.Status)),
		zap.String("message", outcome.Message))

	return s.processed.Insert(ctx, id)
}
