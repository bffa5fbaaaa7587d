package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/questionbank/internal/cache"
	"github.com/ppiankov/questionbank/internal/httpclient"
	"github.com/ppiankov/questionbank/internal/ingest"
	"github.com/ppiankov/questionbank/internal/logger"
	"github.com/ppiankov/questionbank/internal/model"
	"github.com/ppiankov/questionbank/internal/repository"
	"github.com/ppiankov/questionbank/internal/submit"
	"github.com/ppiankov/questionbank/internal/worker"
)

// app is the wired object graph shared by every command
type app struct {
	cfg       *model.Config
	logger    *zap.Logger
	store     *cache.QuestionStore // nil when the cache is disabled
	questions *repository.Repository
	submitter *submit.Client
}

func newApp(cfg *model.Config) (*app, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	client := httpclient.New(cfg.HTTP)
	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	var source ingest.Source
	sourceName := cfg.Source.URL
	if cfg.Source.Path != "" {
		source = ingest.NewFileSource(cfg.Source.Path)
		sourceName = cfg.Source.Path
	} else {
		fetcher := ingest.NewFetcher(client, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, limiter,
			ingest.WithAttempts(cfg.HTTP.FetchAttempts))
		source = ingest.NewHTTPSource(fetcher, cfg.Source.URL)
	}

	opts := []ingest.Option{
		ingest.WithWorkers(cfg.Concurrency.Workers),
		ingest.WithLogger(log),
	}

	a := &app{cfg: cfg, logger: log}

	// Keep the interfaces nil (not typed-nil) when caching is off
	var invalidator repository.Invalidator
	if cfg.Cache.Enabled {
		a.store = cache.NewQuestionStore(cache.NewLayeredCache(cfg.Cache.Dir), cfg.Cache.Key)
		opts = append(opts, ingest.WithStore(a.store))
		invalidator = a.store
	}

	a.questions = repository.New(ingest.NewPipeline(source, opts...), invalidator)
	a.submitter = submit.NewClient(client, cfg.Submit.Endpoint, limiter, log)

	log.Debug("configured",
		zap.String("source", sourceName),
		zap.String("submit_endpoint", cfg.Submit.Endpoint),
		zap.Bool("cache", cfg.Cache.Enabled),
	)

	return a, nil
}

// close flushes buffered log entries
func (a *app) close() {
	_ = a.logger.Sync()
}
