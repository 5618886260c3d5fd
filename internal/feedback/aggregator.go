// Package feedback holds the pure list and rating arithmetic behind product and
// store feedback. Nothing here performs I/O or keeps state between calls.
package feedback

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/autoxpert/feedback-backend/internal/models"
	"github.com/google/uuid"
)

const anonymousAuthor = "Anonymous"

var (
	ErrEmptyComment     = errors.New("comment cannot be empty")
	ErrInvalidSentiment = errors.New("sentiment must be positive or negative")
)

// now is replaced in tests.
var now = time.Now

// AddFeedback returns a new list with one entry appended. The input slice and the
// entries it holds are left untouched; on error the input is returned as-is.
func AddFeedback(entries []models.FeedbackEntry, author, comment string, sentiment models.Sentiment) ([]models.FeedbackEntry, models.FeedbackEntry, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return entries, models.FeedbackEntry{}, ErrEmptyComment
	}
	if !sentiment.IsValid() {
		return entries, models.FeedbackEntry{}, fmt.Errorf("%w: %q", ErrInvalidSentiment, sentiment)
	}

	author = strings.TrimSpace(author)
	if author == "" {
		author = anonymousAuthor
	}

	entry := models.FeedbackEntry{
		ID:        uuid.New(),
		Author:    author,
		Comment:   comment,
		Sentiment: sentiment,
		CreatedAt: now().UTC(),
	}

	// Full slice expression forces a copy so callers holding the old slice never
	// observe the new element through shared capacity.
	next := append(entries[:len(entries):len(entries)], entry)
	return next, entry, nil
}

// ComputeSummary derives counts, the positive percentage and the star rating.
func ComputeSummary(entries []models.FeedbackEntry) models.RatingSummary {
	total := len(entries)
	positive := 0
	for _, e := range entries {
		if e.Sentiment == models.SentimentPositive {
			positive++
		}
	}

	var percentage float64
	if total > 0 {
		percentage = float64(positive) / float64(total) * 100
	}

	return models.RatingSummary{
		Total:              total,
		PositiveCount:      positive,
		NegativeCount:      total - positive,
		PercentagePositive: percentage,
		StarRating:         StarRating(percentage),
	}
}

// StarRating maps a positive percentage in [0,100] to stars in half steps.
// The percentage is first rounded to a whole tenth (halves round up, so 25% is
// bucket 3) and the bucket is then halved. Doing it in one step on the star
// value gives different answers at the .5 boundaries.
func StarRating(percentage float64) float64 {
	if percentage <= 0 || math.IsNaN(percentage) {
		return 0
	}
	if percentage >= 100 {
		return 5
	}
	bucket := math.Floor(percentage/10 + 0.5)
	return bucket / 2
}

// Message is the confirmation shown to the author after a submission.
func Message(sentiment models.Sentiment, summary models.RatingSummary) string {
	return fmt.Sprintf("Your feedback is %s (%s stars).", sentiment, strconv.FormatFloat(summary.StarRating, 'f', -1, 64))
}
