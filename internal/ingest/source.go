package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Source yields the raw CSV body
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPSource fetches the CSV from a fixed URL
type HTTPSource struct {
	fetcher *Fetcher
	url     string
}

// NewHTTPSource binds fetcher to url
func NewHTTPSource(fetcher *Fetcher, url string) *HTTPSource {
	return &HTTPSource{fetcher: fetcher, url: url}
}

// Fetch retrieves the CSV. Non-2xx responses map to ErrResourceUnavailable.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	result, err := s.fetcher.FetchWithRetry(ctx, s.url)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, fmt.Errorf("%w: %s: %w", ErrResourceUnavailable, s.url, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailure, s.url, err)
	}
	return result.Body, nil
}

// String returns the source URL
func (s *HTTPSource) String() string {
	return s.url
}

// FileSource reads the CSV from the local filesystem
type FileSource struct {
	path string
}

// NewFileSource reads from path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads the file. A missing file maps to ErrResourceUnavailable.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrResourceUnavailable, s.path, err)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrLoadFailure, s.path, err)
	}
	return data, nil
}

// String returns the file path
func (s *FileSource) String() string {
	return s.path
}
