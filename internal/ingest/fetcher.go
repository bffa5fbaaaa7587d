package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/ppiankov/questionbank/internal/worker"
)

// Fetcher retrieves raw CSV bytes over HTTP
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	attempts   int
	limiter    *worker.Limiter
}

// ErrBodyTooLarge is returned when a response exceeds the configured cap.
var ErrBodyTooLarge = errors.New("response body exceeds limit")

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithAttempts sets how many times FetchWithRetry tries. Values below 1 mean 1.
func WithAttempts(n int) FetcherOption {
	return func(f *Fetcher) { f.attempts = n }
}

// NewFetcher creates a Fetcher. limiter may be nil. By default
// FetchWithRetry makes a single attempt.
func NewFetcher(client *http.Client, userAgent string, maxBytes int64, limiter *worker.Limiter, opts ...FetcherOption) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &Fetcher{
		httpClient: client,
		userAgent:  userAgent,
		maxBytes:   maxBytes,
		attempts:   1,
		limiter:    limiter,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.attempts < 1 {
		f.attempts = 1
	}
	return f
}

// FetchResult is the fetched body and its response metadata
type FetchResult struct {
	Body        []byte
	StatusCode  int
	ContentType string
	FinalURL    string
}

// StatusError reports a non-2xx response
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.StatusCode, e.Status)
}

// Fetch performs a single GET of rawURL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.maxBytes)
	}

	return &FetchResult{
		Body:        data,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

// fetchSleepFunc is swapped out in tests
var fetchSleepFunc = func(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// FetchWithRetry retries transient failures (5xx, 429, connection errors)
// with linear backoff, up to the configured attempts. Other failures are
// returned immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 1; attempt <= f.attempts; attempt++ {
		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) || attempt == f.attempts {
			break
		}
		if err := fetchSleepFunc(ctx, time.Duration(attempt)*500*time.Millisecond); err != nil {
			break
		}
	}
	return nil, lastErr
}

func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 || statusErr.StatusCode == http.StatusTooManyRequests
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Op != "parse"
}
