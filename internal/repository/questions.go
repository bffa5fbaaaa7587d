// Package repository holds the session's question list behind an explicit
// object so views never touch global state and tests can swap in fakes.
package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/ppiankov/questionbank/internal/model"
)

// ErrNotLoaded is returned by Get before a successful Load
var ErrNotLoaded = errors.New("questions not loaded")

// Loader produces the question list (ingest.Pipeline satisfies it)
type Loader interface {
	Load(ctx context.Context) ([]model.Question, error)
}

// Invalidator drops the durable copy (cache.QuestionStore satisfies it)
type Invalidator interface {
	Delete() error
}

// Repository caches the loaded list in memory for the session.
// Load runs the loader at most once at a time; later calls reuse the result.
type Repository struct {
	loader      Loader
	invalidator Invalidator

	mu        sync.Mutex
	questions []model.Question
	byID      map[int]model.Question
	loaded    bool
}

// New creates a repository. invalidator may be nil.
func New(loader Loader, invalidator Invalidator) *Repository {
	return &Repository{loader: loader, invalidator: invalidator}
}

// Load returns the list, invoking the loader only if nothing is held yet
func (r *Repository) Load(ctx context.Context) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.questions, nil
	}

	questions, err := r.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	r.questions = questions
	r.byID = make(map[int]model.Question, len(questions))
	for _, q := range questions {
		if _, dup := r.byID[q.ID]; !dup {
			r.byID[q.ID] = q
		}
	}
	r.loaded = true

	return r.questions, nil
}

// Get returns the held list without loading
func (r *Repository) Get() ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		return nil, ErrNotLoaded
	}
	return r.questions, nil
}

// Find looks up a held question by id. When ids repeat, the first row wins.
func (r *Repository) Find(id int) (model.Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.byID[id]
	return q, ok
}

// Invalidate forgets the in-memory list and the durable copy
func (r *Repository) Invalidate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.questions = nil
	r.byID = nil
	r.loaded = false

	if r.invalidator != nil {
		return r.invalidator.Delete()
	}
	return nil
}
