package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/questionbank/internal/model"
	"github.com/ppiankov/questionbank/internal/normalize"
	"github.com/ppiankov/questionbank/internal/worker"
)

// Store is the read-through cache the pipeline consults before fetching
type Store interface {
	Get() ([]model.Question, bool)
	Set(questions []model.Question) error
}

// Pipeline fetches, parses, normalizes and caches the question list
type Pipeline struct {
	source     Source
	store      Store
	workers    int
	logger     *zap.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithStore enables the read-through cache
func WithStore(store Store) Option {
	return func(p *Pipeline) { p.store = store }
}

// WithWorkers sets how many goroutines normalize rows
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// NewPipeline creates a pipeline reading from source
func NewPipeline(source Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:     source,
		workers:    1,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// Load returns the ordered question list. A non-empty cached list is
// returned as-is without fetching. Errors carry ErrResourceUnavailable,
// ErrParseFailure or ErrLoadFailure.
func (p *Pipeline) Load(ctx context.Context) ([]model.Question, error) {
	if p.store != nil {
		if cached, ok := p.store.Get(); ok && len(cached) > 0 {
			p.logger.Debug("questions served from cache", zap.Int("count", len(cached)))
			return cached, nil
		}
	}

	start := time.Now()

	data, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, classify(fmt.Errorf("fetch csv: %w", err))
	}

	records, strategy, err := Parse(data)
	if err != nil {
		return nil, err
	}

	questions, err := worker.Map(ctx, p.workers, records, normalizeRecord)
	if err != nil {
		return nil, classify(fmt.Errorf("normalize rows: %w", err))
	}

	p.logger.Info("questions loaded",
		zap.Int("count", len(questions)),
		zap.String("strategy", strategy),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)),
	)

	if p.store != nil {
		if err := p.store.Set(questions); err != nil {
			p.logger.Warn("failed to cache questions", zap.Error(err))
		}
	}

	return questions, nil
}

func normalizeRecord(r Record) model.Question {
	return model.Question{
		ID:       r.ID,
		Question: normalize.Clean(r.Question),
		Subject:  normalize.Clean(r.Subject),
	}
}
