package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/ppiankov/questionbank/internal/model"
)

type fakeLoader struct {
	questions []model.Question
	err       error
	calls     int
}

func (l *fakeLoader) Load(context.Context) ([]model.Question, error) {
	l.calls++
	return l.questions, l.err
}

type fakeInvalidator struct {
	deletes int
}

func (i *fakeInvalidator) Delete() error {
	i.deletes++
	return nil
}

func sample() []model.Question {
	return []model.Question{
		{ID: 1, Question: "A?", Subject: "X"},
		{ID: 2, Question: "B?", Subject: "Y"},
		{ID: 2, Question: "duplicate id", Subject: "Z"},
	}
}

func TestRepository_LoadOnce(t *testing.T) {
	loader := &fakeLoader{questions: sample()}
	repo := New(loader, nil)

	for i := 0; i < 3; i++ {
		got, err := repo.Load(context.Background())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 questions, got %d", len(got))
		}
	}
	if loader.calls != 1 {
		t.Errorf("expected loader called once, got %d", loader.calls)
	}
}

func TestRepository_GetBeforeLoad(t *testing.T) {
	repo := New(&fakeLoader{}, nil)
	if _, err := repo.Get(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestRepository_LoadErrorIsNotCached(t *testing.T) {
	loader := &fakeLoader{err: errors.New("down")}
	repo := New(loader, nil)

	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	loader.err = nil
	loader.questions = sample()
	if _, err := repo.Load(context.Background()); err != nil {
		t.Fatalf("expected second Load to succeed, got %v", err)
	}
	if loader.calls != 2 {
		t.Errorf("expected 2 loader calls, got %d", loader.calls)
	}
}

func TestRepository_Find(t *testing.T) {
	repo := New(&fakeLoader{questions: sample()}, nil)
	if _, ok := repo.Find(1); ok {
		t.Error("Find should miss before Load")
	}

	_, _ = repo.Load(context.Background())

	q, ok := repo.Find(2)
	if !ok {
		t.Fatal("expected to find id 2")
	}
	if q.Question != "B?" {
		t.Errorf("expected first row for repeated id, got %q", q.Question)
	}
	if _, ok := repo.Find(42); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestRepository_Invalidate(t *testing.T) {
	loader := &fakeLoader{questions: sample()}
	inv := &fakeInvalidator{}
	repo := New(loader, inv)

	_, _ = repo.Load(context.Background())
	if err := repo.Invalidate(); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if inv.deletes != 1 {
		t.Errorf("expected durable copy deleted once, got %d", inv.deletes)
	}
	if _, err := repo.Get(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded after Invalidate, got %v", err)
	}

	_, _ = repo.Load(context.Background())
	if loader.calls != 2 {
		t.Errorf("expected reload after Invalidate, got %d calls", loader.calls)
	}
}
