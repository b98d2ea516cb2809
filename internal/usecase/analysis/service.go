package analysis

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/email-scheduler/errors"
	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
	"github.com/johnquangdev/email-scheduler/internal/domain/repositories"
	"github.com/johnquangdev/email-scheduler/internal/usecase/scheduler"
)

// TaskLLM is the slice of the language-model provider used for task
// extraction.
type TaskLLM interface {
	ExtractTasks(ctx context.Context, body string) (string, error)
}

// Service derives sentiment and tasks from ingested messages. Both run for
// every message regardless of whether scheduling succeeded for it.
type Service struct {
	sentiments repositories.SentimentRepository
	tasks      repositories.TaskRepository
	llm        TaskLLM
	logger     *zap.Logger
}

// NewService creates the analysis service
func NewService(
	sentiments repositories.SentimentRepository,
	tasks repositories.TaskRepository,
	llm TaskLLM,
	logger *zap.Logger,
) *Service {
	return &Service{
		sentiments: sentiments,
		tasks:      tasks,
		llm:        llm,
		logger:     logger,
	}
}

// AnalyzeSentiment scores the message and stores the result keyed by its id.
func (s *Service) AnalyzeSentiment(ctx context.Context, messageID, subject, body string) (*entities.SentimentRecord, error) {
	result := AnalyzeSentiment(body)

	record := &entities.SentimentRecord{
		MessageID:  messageID,
		Sentiment:  result.Sentiment,
		Confidence: result.Confidence,
		Priority:   result.Priority,
		Subject:    subject,
		Body:       body,
	}
	if err := s.sentiments.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ExtractTasks asks the LLM for actionable tasks in the body and stores
// them. Duplicate (msg_id, title) pairs are dropped by the repository.
// Returns the number of tasks actually inserted.
func (s *Service) ExtractTasks(ctx context.Context, messageID, body string) (int, error) {
	raw, err := s.llm.ExtractTasks(ctx, body)
	if err != nil {
		return 0, apperrors.ErrAIServiceFailed("groq", err)
	}

	tasks, err := scheduler.ParseTasks(messageID, raw)
	if err != nil {
		s.logger.Warn("task payload did not parse",
			zap.String("message_id", messageID), zap.Error(err))
		return 0, nil
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	inserted, err := s.tasks.InsertBatch(ctx, tasks)
	if err != nil {
		return inserted, err
	}
	return inserted, nil
}

// ListSentiments retrieves all stored sentiment records
func (s *Service) ListSentiments(ctx context.Context) ([]*entities.SentimentRecord, error) {
	return s.sentiments.List(ctx)
}

// ListTasks retrieves all stored tasks
func (s *Service) ListTasks(ctx context.Context) ([]*entities.ExtractedTask, error) {
	return s.tasks.List(ctx)
}
