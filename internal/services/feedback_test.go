package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/autoxpert/feedback-backend/internal/feedback"
	"github.com/autoxpert/feedback-backend/internal/metrics"
	"github.com/autoxpert/feedback-backend/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	mu        sync.Mutex
	sentiment models.Sentiment
	err       error
	calls     int
	block     chan struct{}
	started   chan struct{}
}

func (c *stubClassifier) Classify(ctx context.Context, text string) (models.Sentiment, error) {
	c.mu.Lock()
	c.calls++
	sentiment, err, block, started := c.sentiment, c.err, c.block, c.started
	c.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
		}
	}
	return sentiment, err
}

func (c *stubClassifier) set(sentiment models.Sentiment, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sentiment, c.err = sentiment, err
}

func newFeedbackFixture(t *testing.T) (*FeedbackService, *stubClassifier, *metrics.FeedbackMetrics) {
	t.Helper()
	catalog := NewCatalogService()
	require.NoError(t, catalog.Seed(DefaultStores(), DefaultProducts()))

	classifier := &stubClassifier{sentiment: models.SentimentPositive}
	m := metrics.NewFeedbackMetrics(metrics.NewRegistry())
	return NewFeedbackService(catalog, classifier, m), classifier, m
}

func TestSubmit_AppendsAndSummarises(t *testing.T) {
	svc, classifier, m := newFeedbackFixture(t)
	target := models.ProductTarget(1)

	first, err := svc.Submit(context.Background(), target, "You", "Fits perfectly")
	require.NoError(t, err)
	assert.Equal(t, "Your feedback is positive (5 stars).", first.Message)
	assert.Equal(t, 1, first.Summary.Total)

	classifier.set(models.SentimentNegative, nil)
	second, err := svc.Submit(context.Background(), target, "", "Leaked after a week")
	require.NoError(t, err)

	assert.Equal(t, models.SentimentNegative, second.Entry.Sentiment)
	assert.Equal(t, "Anonymous", second.Entry.Author)
	assert.Equal(t, models.RatingSummary{
		Total:              2,
		PositiveCount:      1,
		NegativeCount:      1,
		PercentagePositive: 50,
		StarRating:         2.5,
	}, second.Summary)
	assert.Equal(t, "Your feedback is negative (2.5 stars).", second.Message)

	list, err := svc.List(target)
	require.NoError(t, err)
	require.Len(t, list.Feedback, 2)
	assert.Equal(t, "Fits perfectly", list.Feedback[0].Comment)
	assert.Equal(t, "Leaked after a week", list.Feedback[1].Comment)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues("product", "accepted")))
}

func TestSubmit_EmptyCommentDoesNotClassify(t *testing.T) {
	svc, classifier, _ := newFeedbackFixture(t)

	_, err := svc.Submit(context.Background(), models.StoreTarget(2), "You", "   ")

	assert.ErrorIs(t, err, feedback.ErrEmptyComment)
	assert.Zero(t, classifier.calls)
	list, err := svc.List(models.StoreTarget(2))
	require.NoError(t, err)
	assert.Empty(t, list.Feedback)
}

func TestSubmit_UnknownTarget(t *testing.T) {
	svc, classifier, _ := newFeedbackFixture(t)

	_, err := svc.Submit(context.Background(), models.ProductTarget(999), "You", "hello")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.Submit(context.Background(), models.StoreTarget(999), "You", "hello")
	assert.ErrorIs(t, err, ErrStoreNotFound)

	assert.Zero(t, classifier.calls)
}

func TestSubmit_ClassifierFailureLeavesListUnchanged(t *testing.T) {
	svc, classifier, m := newFeedbackFixture(t)
	target := models.StoreTarget(1)

	_, err := svc.Submit(context.Background(), target, "You", "Friendly staff")
	require.NoError(t, err)

	failure := &ClassificationError{StatusCode: 500, Reason: "boom"}
	classifier.set("", failure)
	_, err = svc.Submit(context.Background(), target, "You", "Second comment")

	assert.ErrorIs(t, err, ErrClassificationFailed)
	list, err := svc.List(target)
	require.NoError(t, err)
	assert.Len(t, list.Feedback, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("store", "classification_failed")))
}

func TestSubmit_RejectsConcurrentSubmissionForSameTarget(t *testing.T) {
	svc, classifier, _ := newFeedbackFixture(t)
	block := make(chan struct{})
	classifier.block = block
	classifier.started = make(chan struct{}, 1)
	target := models.ProductTarget(2)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), target, "A", "first")
		done <- err
	}()
	<-classifier.started

	_, err := svc.Submit(context.Background(), target, "B", "second")
	assert.ErrorIs(t, err, ErrSubmissionInProgress)

	// A different target has its own slot.
	classifier.mu.Lock()
	classifier.block = nil
	classifier.started = nil
	classifier.mu.Unlock()
	_, err = svc.Submit(context.Background(), models.ProductTarget(3), "C", "other product")
	assert.NoError(t, err)

	close(block)
	require.NoError(t, <-done)

	list, err := svc.List(target)
	require.NoError(t, err)
	require.Len(t, list.Feedback, 1)
	assert.Equal(t, "first", list.Feedback[0].Comment)
}

func TestSubmit_CanceledContextDiscardsResult(t *testing.T) {
	svc, classifier, m := newFeedbackFixture(t)
	classifier.block = make(chan struct{})
	classifier.started = make(chan struct{}, 1)
	target := models.StoreTarget(3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, target, "You", "Great service")
		done <- err
	}()
	<-classifier.started
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not return after cancellation")
	}

	list, err := svc.List(target)
	require.NoError(t, err)
	assert.Empty(t, list.Feedback)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("store", "canceled")))

	// The slot is released once the canceled call returns.
	classifier.mu.Lock()
	classifier.block = nil
	classifier.started = nil
	classifier.mu.Unlock()
	_, err = svc.Submit(context.Background(), target, "You", "Great service")
	assert.NoError(t, err)
}

func TestSeed_LoadsExistingFeedback(t *testing.T) {
	svc, _, _ := newFeedbackFixture(t)
	target := models.ProductTarget(5)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	err := svc.Seed(target, []models.FeedbackEntry{
		{Author: "Nimal", Comment: "Bright and clear", Sentiment: models.SentimentPositive, CreatedAt: created},
		{Author: "Sara", Comment: "Burnt out fast", Sentiment: models.SentimentNegative},
		{Author: "Ravi", Comment: "Good value", Sentiment: models.SentimentPositive},
	})
	require.NoError(t, err)

	summary, err := svc.Summary(target)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.PositiveCount)
	assert.Equal(t, 3.5, summary.StarRating)

	list, err := svc.List(target)
	require.NoError(t, err)
	assert.Equal(t, created, list.Feedback[0].CreatedAt)
}

func TestSeed_RejectsInvalidEntryAtomically(t *testing.T) {
	svc, _, _ := newFeedbackFixture(t)
	target := models.ProductTarget(6)

	err := svc.Seed(target, []models.FeedbackEntry{
		{Author: "a", Comment: "ok", Sentiment: models.SentimentPositive},
		{Author: "b", Comment: "", Sentiment: models.SentimentPositive},
	})

	assert.True(t, errors.Is(err, feedback.ErrEmptyComment))
	summary, err := svc.Summary(target)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
}

func TestList_UnknownTarget(t *testing.T) {
	svc, _, _ := newFeedbackFixture(t)

	_, err := svc.List(models.StoreTarget(42))

	assert.ErrorIs(t, err, ErrStoreNotFound)
}
