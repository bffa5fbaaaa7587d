package worker

import (
	"context"
	"sync"
)

// Job is a unit of work producing a result of type R
type Job[R any] interface {
	Execute(ctx context.Context) R
}

// JobFunc adapts a plain function to Job
type JobFunc[R any] func(ctx context.Context) R

// Execute calls f
func (f JobFunc[R]) Execute(ctx context.Context) R {
	return f(ctx)
}

// Pool runs jobs on a fixed set of goroutines
type Pool[R any] struct {
	workers    int
	jobQueue   chan Job[R]
	results    chan R
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool bound to ctx. Non-positive worker counts become 1.
func NewPool[R any](ctx context.Context, workers int) *Pool[R] {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool[R]{
		workers:    workers,
		jobQueue:   make(chan Job[R], workers*2),
		results:    make(chan R, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers
func (p *Pool[R]) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool[R]) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It returns false if the pool was cancelled first.
func (p *Pool[R]) Submit(job Job[R]) bool {
	if p.ctx.Err() != nil {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Results exposes the result channel. It is closed once Close has been
// called and every worker has exited.
func (p *Pool[R]) Results() <-chan R {
	return p.results
}

// Close stops accepting jobs and closes Results after in-flight jobs finish
func (p *Pool[R]) Close() {
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
		p.cancelFunc()
	}()
}

// Wait closes the pool and collects every result, in completion order
func (p *Pool[R]) Wait() []R {
	p.Close()

	var results []R
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

// Shutdown cancels outstanding work immediately
func (p *Pool[R]) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool[R]) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
