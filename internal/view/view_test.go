package view

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/questionbank/internal/ingest"
	"github.com/ppiankov/questionbank/internal/model"
	"github.com/ppiankov/questionbank/internal/submit"
)

type fakeLoader struct {
	questions []model.Question
	err       error
}

func (l *fakeLoader) Load(context.Context) ([]model.Question, error) {
	return l.questions, l.err
}

func makeQuestions(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{ID: i + 1, Question: fmt.Sprintf("Q%d?", i+1), Subject: "S"}
	}
	return qs
}

func TestListView_Pagination(t *testing.T) {
	v := NewListView(&fakeLoader{questions: makeQuestions(37)})

	if !v.State().Loading {
		t.Error("expected a new view to be loading")
	}
	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	st := v.State()
	if st.Loading || st.Error != "" {
		t.Fatalf("unexpected state after load: %+v", st)
	}
	if st.TotalPages != 3 || len(st.Questions) != 15 || !st.ShowPager {
		t.Errorf("unexpected first page: pages=%d items=%d pager=%v", st.TotalPages, len(st.Questions), st.ShowPager)
	}
	if st.First != 1 || st.Last != 15 {
		t.Errorf("expected range 1-15, got %d-%d", st.First, st.Last)
	}

	if v.Prev() {
		t.Error("Prev on first page should be a no-op")
	}
	if !v.SetPage(3) {
		t.Fatal("expected page 3 to be accepted")
	}
	st = v.State()
	if len(st.Questions) != 7 || st.First != 31 || st.Last != 37 {
		t.Errorf("unexpected last page: items=%d range=%d-%d", len(st.Questions), st.First, st.Last)
	}
	if v.SetPage(4) || v.Next() {
		t.Error("moving past the last page should be a no-op")
	}
	if v.State().Page != 3 {
		t.Errorf("expected to stay on page 3, got %d", v.State().Page)
	}
}

func TestListView_SinglePageHidesPager(t *testing.T) {
	v := NewListView(&fakeLoader{questions: makeQuestions(15)})
	_ = v.Load(context.Background())
	if v.State().ShowPager {
		t.Error("pager should be hidden for a single page")
	}
}

func TestListView_LoadErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"parse", fmt.Errorf("%w: bad quote", ingest.ErrParseFailure), MsgParseFailed},
		{"unavailable", fmt.Errorf("%w: 404", ingest.ErrResourceUnavailable), MsgLoadFailed},
		{"other", errors.New("boom"), MsgLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewListView(&fakeLoader{err: tt.err})
			if err := v.Load(context.Background()); err == nil {
				t.Fatal("expected error")
			}
			st := v.State()
			if st.Error != tt.want {
				t.Errorf("expected message %q, got %q", tt.want, st.Error)
			}
			if st.Loading || len(st.Questions) != 0 {
				t.Errorf("unexpected state: %+v", st)
			}
		})
	}
}

func TestListView_Select(t *testing.T) {
	v := NewListView(&fakeLoader{questions: []model.Question{{ID: 42, Question: "Q", Subject: "S"}}})
	_ = v.Load(context.Background())

	nav, err := v.Select(42)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if nav.Path != "/question/42" || nav.Question.ID != 42 {
		t.Errorf("unexpected navigation: %+v", nav)
	}
	if _, err := v.Select(7); err == nil {
		t.Error("expected error selecting an unknown id")
	}
}

type fakeSubmitter struct {
	calls []model.QuestionSubmission
	err   error
	block chan struct{}
}

func (s *fakeSubmitter) Submit(ctx context.Context, sub model.QuestionSubmission) error {
	s.calls = append(s.calls, sub)
	if s.block != nil {
		<-s.block
	}
	return s.err
}

func TestFormView_NotFound(t *testing.T) {
	v := NewFormView(nil, &fakeSubmitter{}, nil)
	if v.Found() {
		t.Error("expected not found")
	}
	if _, err := v.Submit(context.Background()); !errors.Is(err, ErrNoQuestion) {
		t.Errorf("expected ErrNoQuestion, got %v", err)
	}
}

func TestFormView_Prefill(t *testing.T) {
	q := &model.Question{ID: 3, Question: "What?", Subject: "Bio"}
	v := NewFormView(q, &fakeSubmitter{}, nil)
	if v.Question != "What?" || v.Subject != "Bio" || v.RelatedTopics != "" {
		t.Errorf("unexpected prefill: %q %q %q", v.Question, v.Subject, v.RelatedTopics)
	}
}

func TestFormView_ValidationNeverPosts(t *testing.T) {
	sub := &fakeSubmitter{}
	v := NewFormView(&model.Question{ID: 1, Question: "Q", Subject: "S"}, sub, nil)
	v.RelatedTopics = "   "

	out, err := v.Submit(context.Background())
	if !errors.Is(err, submit.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(sub.calls) != 0 {
		t.Errorf("expected no POST, got %d", len(sub.calls))
	}
	if out.Notice.Description != MsgValidation || !out.Notice.Destructive || out.Redirect != "" {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestFormView_SubmitSuccess(t *testing.T) {
	sub := &fakeSubmitter{}
	v := NewFormView(&model.Question{ID: 9, Question: "Q", Subject: "S"}, sub, nil)
	v.RelatedTopics = "  graphs, trees  "

	out, err := v.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(sub.calls) != 1 {
		t.Fatalf("expected exactly one POST, got %d", len(sub.calls))
	}
	if sub.calls[0].RelatedTopics != "graphs, trees" || sub.calls[0].ID != 9 {
		t.Errorf("unexpected submission: %+v", sub.calls[0])
	}
	if out.Redirect != ListPath || out.Notice.Description != MsgSaved {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestFormView_SubmitFailureKeepsFields(t *testing.T) {
	sub := &fakeSubmitter{err: fmt.Errorf("%w: 500", submit.ErrSubmissionFailure)}
	v := NewFormView(&model.Question{ID: 9, Question: "Q", Subject: "S"}, sub, nil)
	v.Question = "Edited"
	v.RelatedTopics = "topics"

	out, err := v.Submit(context.Background())
	if !errors.Is(err, submit.ErrSubmissionFailure) {
		t.Fatalf("expected ErrSubmissionFailure, got %v", err)
	}
	if out.Redirect != "" || out.Notice.Description != MsgSubmitFailed {
		t.Errorf("unexpected outcome: %+v", out)
	}
	if v.Question != "Edited" || v.RelatedTopics != "topics" {
		t.Error("form fields were not preserved for retry")
	}
	if v.Submitting() {
		t.Error("submitting flag should be cleared after failure")
	}

	sub.err = nil
	if _, err := v.Submit(context.Background()); err != nil {
		t.Errorf("expected retry to succeed, got %v", err)
	}
}

func TestFormView_GuardsConcurrentSubmit(t *testing.T) {
	sub := &fakeSubmitter{block: make(chan struct{})}
	v := NewFormView(&model.Question{ID: 1, Question: "Q", Subject: "S"}, sub, nil)
	v.RelatedTopics = "x"

	done := make(chan struct{})
	go func() {
		_, _ = v.Submit(context.Background())
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !v.Submitting() {
		if time.Now().After(deadline) {
			t.Fatal("first submit never started")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := v.Submit(context.Background()); !errors.Is(err, ErrSubmitting) {
		t.Errorf("expected ErrSubmitting, got %v", err)
	}

	close(sub.block)
	<-done
}

func TestFormView_SharedGuardSpansInstances(t *testing.T) {
	sub := &fakeSubmitter{block: make(chan struct{})}
	q := &model.Question{ID: 4, Question: "Q", Subject: "S"}
	var flag atomic.Bool

	first := NewFormView(q, sub, nil, WithSubmitGuard(&flag))
	first.RelatedTopics = "x"
	second := NewFormView(q, sub, nil, WithSubmitGuard(&flag))
	second.RelatedTopics = "y"

	done := make(chan struct{})
	go func() {
		_, _ = first.Submit(context.Background())
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !second.Submitting() {
		if time.Now().After(deadline) {
			t.Fatal("first submit never started")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := second.Submit(context.Background()); !errors.Is(err, ErrSubmitting) {
		t.Errorf("expected ErrSubmitting from the second instance, got %v", err)
	}

	close(sub.block)
	<-done
	if flag.Load() {
		t.Error("shared flag should be cleared once the submit finishes")
	}
}
