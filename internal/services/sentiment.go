package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/autoxpert/feedback-backend/internal/config"
	"github.com/autoxpert/feedback-backend/internal/feedback"
	"github.com/autoxpert/feedback-backend/internal/metrics"
	"github.com/autoxpert/feedback-backend/internal/models"
	"github.com/autoxpert/feedback-backend/pkg/logger"
	"github.com/sony/gobreaker/v2"
)

const maxClassifierBody = 1 << 20

var (
	ErrClassificationFailed  = errors.New("sentiment classification failed")
	ErrClassificationTimeout = errors.New("sentiment classification timed out")
	ErrClassifierUnavailable = errors.New("sentiment classifier unavailable")
)

// ClassificationError carries the reason a classification round trip failed.
// It always matches ErrClassificationFailed with errors.Is.
type ClassificationError struct {
	StatusCode int
	Reason     string
	Err        error
}

func (e *ClassificationError) Error() string {
	msg := "sentiment classification failed: " + e.Reason
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ClassificationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrClassificationFailed, e.Err}
	}
	return []error{ErrClassificationFailed}
}

// Classifier maps free text to a sentiment label.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Sentiment, error)
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Prediction    string `json:"prediction"`
	PositiveCount *int   `json:"positive_count,omitempty"`
	NegativeCount *int   `json:"negative_count,omitempty"`
	Error         string `json:"error,omitempty"`
}

type SentimentService struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[models.Sentiment]
	metrics *metrics.ClassifierMetrics
}

func NewSentimentService(cfg *config.Config, m *metrics.ClassifierMetrics) *SentimentService {
	threshold := uint32(1)
	if cfg.BreakerFailureThreshold > 1 {
		threshold = uint32(cfg.BreakerFailureThreshold)
	}

	s := &SentimentService{
		baseURL: cfg.SentimentAPIURL,
		apiKey:  cfg.SentimentAPIKey,
		timeout: cfg.SentimentTimeout,
		client:  &http.Client{},
		metrics: m,
	}

	s.breaker = gobreaker.NewCircuitBreaker[models.Sentiment](gobreaker.Settings{
		Name:        "sentiment-classifier",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A caller walking away says nothing about the classifier's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logger.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state change")
			if s.metrics != nil {
				s.metrics.BreakerState.Set(stateToFloat(to))
			}
		},
	})

	return s
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Classify sends one comment to POST /predict and returns its label. Every
// failure wraps ErrClassificationFailed; an expired deadline also wraps
// ErrClassificationTimeout and an open breaker ErrClassifierUnavailable.
func (s *SentimentService) Classify(ctx context.Context, text string) (models.Sentiment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", feedback.ErrEmptyComment
	}

	start := time.Now()
	sentiment, err := s.breaker.Execute(func() (models.Sentiment, error) {
		return s.predict(ctx, text)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &ClassificationError{Reason: "circuit open", Err: fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)}
	}
	s.observe(start, err)

	if err != nil {
		logger.WithFields(logger.Fields{
			"duration": time.Since(start).String(),
		}).WithError(err).Warn("Sentiment classification failed")
		return "", err
	}
	return sentiment, nil
}

func (s *SentimentService) predict(ctx context.Context, text string) (models.Sentiment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return "", &ClassificationError{Reason: "failed to encode request", Err: err}
	}

	url := fmt.Sprintf("%s/predict", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &ClassificationError{Reason: "failed to create request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &ClassificationError{Reason: fmt.Sprintf("no response within %s", s.timeout), Err: ErrClassificationTimeout}
		}
		return "", &ClassificationError{Reason: "failed to send request", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxClassifierBody))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &ClassificationError{Reason: fmt.Sprintf("no response within %s", s.timeout), Err: ErrClassificationTimeout}
		}
		return "", &ClassificationError{Reason: "failed to read response", Err: err}
	}

	var out predictResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := "classifier returned an error"
		if decodeErr == nil && out.Error != "" {
			reason = out.Error
		}
		return "", &ClassificationError{StatusCode: resp.StatusCode, Reason: reason}
	}
	if decodeErr != nil {
		return "", &ClassificationError{StatusCode: resp.StatusCode, Reason: "malformed response", Err: decodeErr}
	}

	sentiment := models.Sentiment(strings.ToLower(strings.TrimSpace(out.Prediction)))
	if !sentiment.IsValid() {
		return "", &ClassificationError{StatusCode: resp.StatusCode, Reason: fmt.Sprintf("unexpected prediction %q", out.Prediction)}
	}

	if out.PositiveCount != nil && out.NegativeCount != nil {
		logger.WithFields(logger.Fields{
			"prediction":       sentiment,
			"service_positive": *out.PositiveCount,
			"service_negative": *out.NegativeCount,
		}).Debug("Classifier running totals")
	}

	return sentiment, nil
}

func (s *SentimentService) observe(start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.Duration.Observe(time.Since(start).Seconds())

	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrClassifierUnavailable):
		outcome = "unavailable"
	case errors.Is(err, ErrClassificationTimeout):
		outcome = "timeout"
	case errors.Is(err, context.Canceled):
		outcome = "canceled"
	default:
		outcome = "error"
	}
	s.metrics.Requests.WithLabelValues(outcome).Inc()
}
