package models

import (
	"time"

	"github.com/google/uuid"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) IsValid() bool {
	return s == SentimentPositive || s == SentimentNegative
}

// FeedbackEntry is one submitted comment and the label the classifier gave it.
// Entries are never modified after they are appended to a list.
type FeedbackEntry struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Comment   string    `json:"comment"`
	Sentiment Sentiment `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}

type RatingSummary struct {
	Total              int     `json:"total"`
	PositiveCount      int     `json:"positive_count"`
	NegativeCount      int     `json:"negative_count"`
	PercentagePositive float64 `json:"percentage_positive"`
	StarRating         float64 `json:"star_rating"`
}

type TargetKind string

const (
	TargetProduct TargetKind = "product"
	TargetStore   TargetKind = "store"
)

// Target identifies the product or store a feedback list belongs to.
type Target struct {
	Kind TargetKind
	ID   uint
}

func ProductTarget(id uint) Target { return Target{Kind: TargetProduct, ID: id} }

func StoreTarget(id uint) Target { return Target{Kind: TargetStore, ID: id} }

type SubmitFeedbackRequest struct {
	Author  string `json:"author" binding:"max=100"`
	Comment string `json:"comment" binding:"required,max=2000"`
}

type FeedbackListResponse struct {
	Feedback []FeedbackEntry `json:"feedback"`
	Summary  RatingSummary   `json:"summary"`
}

type SubmitFeedbackResponse struct {
	Entry   FeedbackEntry `json:"entry"`
	Summary RatingSummary `json:"summary"`
	Message string        `json:"message"`
}

type AnalyzeSentimentRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}
