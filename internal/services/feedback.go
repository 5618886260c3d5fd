package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/autoxpert/feedback-backend/internal/feedback"
	"github.com/autoxpert/feedback-backend/internal/metrics"
	"github.com/autoxpert/feedback-backend/internal/models"
	"github.com/autoxpert/feedback-backend/pkg/logger"
	"golang.org/x/sync/semaphore"
)

var ErrSubmissionInProgress = errors.New("a feedback submission for this item is already in progress")

// TargetCatalog tells the feedback service which products and stores exist.
type TargetCatalog interface {
	Exists(target models.Target) error
}

// board is the state container for one product or store: its feedback list
// and a single slot that keeps at most one classification outstanding.
type board struct {
	mu       sync.RWMutex
	entries  []models.FeedbackEntry
	inflight *semaphore.Weighted
}

func newBoard() *board {
	return &board{inflight: semaphore.NewWeighted(1)}
}

func (b *board) snapshot() []models.FeedbackEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.FeedbackEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

type FeedbackService struct {
	mu         sync.Mutex
	boards     map[models.Target]*board
	catalog    TargetCatalog
	classifier Classifier
	metrics    *metrics.FeedbackMetrics
}

func NewFeedbackService(catalog TargetCatalog, classifier Classifier, m *metrics.FeedbackMetrics) *FeedbackService {
	return &FeedbackService{
		boards:     make(map[models.Target]*board),
		catalog:    catalog,
		classifier: classifier,
		metrics:    m,
	}
}

func (s *FeedbackService) board(target models.Target) *board {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[target]
	if !ok {
		b = newBoard()
		s.boards[target] = b
	}
	return b
}

// Seed loads feedback that already exists for a target. Entries with an empty
// comment or an unknown sentiment are rejected.
func (s *FeedbackService) Seed(target models.Target, entries []models.FeedbackEntry) error {
	if err := s.catalog.Exists(target); err != nil {
		return err
	}

	b := s.board(target)
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.entries
	for _, e := range entries {
		next, _, err := feedback.AddFeedback(list, e.Author, e.Comment, e.Sentiment)
		if err != nil {
			return fmt.Errorf("seed %s %d: %w", target.Kind, target.ID, err)
		}
		if !e.CreatedAt.IsZero() {
			next[len(next)-1].CreatedAt = e.CreatedAt
		}
		list = next
	}
	b.entries = list
	return nil
}

// Submit validates, classifies and appends one comment. The list is only
// touched after a successful classification, and only if ctx is still live.
func (s *FeedbackService) Submit(ctx context.Context, target models.Target, author, comment string) (*models.SubmitFeedbackResponse, error) {
	if strings.TrimSpace(comment) == "" {
		s.record(target, "invalid")
		return nil, feedback.ErrEmptyComment
	}
	if err := s.catalog.Exists(target); err != nil {
		s.record(target, "not_found")
		return nil, err
	}

	b := s.board(target)
	if !b.inflight.TryAcquire(1) {
		s.record(target, "busy")
		return nil, ErrSubmissionInProgress
	}
	defer b.inflight.Release(1)

	sentiment, err := s.classifier.Classify(ctx, comment)
	if err != nil {
		s.record(target, "classification_failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		s.record(target, "canceled")
		return nil, err
	}

	b.mu.Lock()
	next, entry, err := feedback.AddFeedback(b.entries, author, comment, sentiment)
	if err != nil {
		b.mu.Unlock()
		s.record(target, "invalid")
		return nil, err
	}
	b.entries = next
	summary := feedback.ComputeSummary(next)
	b.mu.Unlock()

	s.record(target, "accepted")
	logger.WithFields(logger.Fields{
		"target":      target.Kind,
		"target_id":   target.ID,
		"sentiment":   sentiment,
		"star_rating": summary.StarRating,
	}).Info("Feedback accepted")

	return &models.SubmitFeedbackResponse{
		Entry:   entry,
		Summary: summary,
		Message: feedback.Message(sentiment, summary),
	}, nil
}

func (s *FeedbackService) List(target models.Target) (*models.FeedbackListResponse, error) {
	if err := s.catalog.Exists(target); err != nil {
		return nil, err
	}

	entries := s.board(target).snapshot()
	return &models.FeedbackListResponse{
		Feedback: entries,
		Summary:  feedback.ComputeSummary(entries),
	}, nil
}

func (s *FeedbackService) Summary(target models.Target) (models.RatingSummary, error) {
	list, err := s.List(target)
	if err != nil {
		return models.RatingSummary{}, err
	}
	return list.Summary, nil
}

func (s *FeedbackService) record(target models.Target, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Submissions.WithLabelValues(string(target.Kind), result).Inc()
}
