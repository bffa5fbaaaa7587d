// Package submit posts question annotations to the configured backend.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/ppiankov/questionbank/internal/model"
	"github.com/ppiankov/questionbank/internal/worker"
	"go.uber.org/zap"
)

var (
	// ErrValidation means the annotation was rejected before any request was sent
	ErrValidation = errors.New("validation error")

	// ErrSubmissionFailure means the POST failed at the network or HTTP level
	ErrSubmissionFailure = errors.New("submission failure")
)

// NewSubmission builds the record for q from the form's field values.
// All text fields are trimmed; empty related topics fail with ErrValidation.
func NewSubmission(q model.Question, question, subject, relatedTopics string) (model.QuestionSubmission, error) {
	topics := strings.TrimSpace(relatedTopics)
	if topics == "" {
		return model.QuestionSubmission{}, fmt.Errorf("%w: related topics are required", ErrValidation)
	}

	return model.QuestionSubmission{
		ID:            q.ID,
		Question:      strings.TrimSpace(question),
		Subject:       strings.TrimSpace(subject),
		RelatedTopics: topics,
	}, nil
}

// Response is the optional body a backend may return. Nothing depends on it.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client POSTs submissions as JSON
type Client struct {
	httpClient *http.Client
	endpoint   string
	limiter    *worker.Limiter
	logger     *zap.Logger
}

// NewClient creates a client for endpoint. limiter and logger may be nil.
func NewClient(httpClient *http.Client, endpoint string, limiter *worker.Limiter, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		limiter:    limiter,
		logger:     logger,
	}
}

// Endpoint returns the backend URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends exactly one POST for s. Any 2xx status is success.
func (c *Client) Submit(ctx context.Context, s model.QuestionSubmission) error {
	if strings.TrimSpace(s.RelatedTopics) == "" {
		return fmt.Errorf("%w: related topics are required", ErrValidation)
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: marshal submission: %w", ErrSubmissionFailure, err)
	}

	if err := c.limiter.Wait(ctx, c.endpoint); err != nil {
		return fmt.Errorf("%w: rate limit: %w", ErrSubmissionFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrSubmissionFailure, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post: %w", ErrSubmissionFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("submission rejected",
			zap.Int("question_id", s.ID),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID),
		)
		return fmt.Errorf("%w: unexpected status: %d %s", ErrSubmissionFailure, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var decoded Response
	if len(body) > 0 && json.Unmarshal(body, &decoded) == nil && decoded.Message != "" {
		c.logger.Info("submission saved",
			zap.Int("question_id", s.ID),
			zap.String("request_id", requestID),
			zap.String("message", decoded.Message),
		)
	} else {
		c.logger.Info("submission saved", zap.Int("question_id", s.ID), zap.String("request_id", requestID))
	}

	return nil
}
