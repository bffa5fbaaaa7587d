package view

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/ppiankov/questionbank/internal/model"
	"github.com/ppiankov/questionbank/internal/submit"
	"go.uber.org/zap"
)

// Form notices
const (
	MsgQuestionNotFound  = "Question not found"
	MsgValidationTitle   = "Validation Error"
	MsgValidation        = "Please enter some related topics."
	MsgSubmitFailedTitle = "Error"
	MsgSubmitFailed      = "Failed to save related topics. Please try again."
	MsgSavedTitle        = "Success!"
	MsgSaved             = "Related topics saved successfully."
)

// ListPath is the route of the question list
const ListPath = "/"

// ErrNoQuestion is returned when the form was opened without a question
var ErrNoQuestion = errors.New("no question to annotate")

// ErrSubmitting is returned when a submit is already in flight
var ErrSubmitting = errors.New("submission already in progress")

// Submitter sends a submission (submit.Client satisfies it)
type Submitter interface {
	Submit(ctx context.Context, s model.QuestionSubmission) error
}

// Notice is a transient notification shown to the user
type Notice struct {
	Title       string
	Description string
	Destructive bool
}

// Outcome is what the form asks the caller to show or do after Submit
type Outcome struct {
	Notice   Notice
	Redirect string // empty: stay on the form
}

// FormView is the annotation form for a single question
type FormView struct {
	question  *model.Question
	submitter Submitter
	logger    *zap.Logger

	// Editable fields, pre-filled from the question
	Question      string
	Subject       string
	RelatedTopics string

	submitting *atomic.Bool
}

// FormOption configures a FormView
type FormOption func(*FormView)

// WithSubmitGuard shares the in-flight flag between views of the same
// question, so a second form instance cannot submit while one is pending.
func WithSubmitGuard(flag *atomic.Bool) FormOption {
	return func(v *FormView) {
		if flag != nil {
			v.submitting = flag
		}
	}
}

// NewFormView opens the form for q. A nil q renders the not-found fallback.
func NewFormView(q *model.Question, submitter Submitter, logger *zap.Logger, opts ...FormOption) *FormView {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &FormView{question: q, submitter: submitter, logger: logger, submitting: new(atomic.Bool)}
	for _, opt := range opts {
		opt(v)
	}
	if q != nil {
		v.Question = q.Question
		v.Subject = q.Subject
	}
	return v
}

// Found reports whether the form has a question to annotate
func (v *FormView) Found() bool {
	return v.question != nil
}

// Target returns the question being annotated
func (v *FormView) Target() (model.Question, bool) {
	if v.question == nil {
		return model.Question{}, false
	}
	return *v.question, true
}

// Submitting reports whether a submit is in flight
func (v *FormView) Submitting() bool {
	return v.submitting.Load()
}

// Submit validates the form and POSTs it. Validation and transport errors
// leave the fields untouched so the user can retry. On success the caller
// is redirected to the list.
func (v *FormView) Submit(ctx context.Context) (Outcome, error) {
	if v.question == nil {
		return Outcome{}, ErrNoQuestion
	}

	s, err := submit.NewSubmission(*v.question, v.Question, v.Subject, v.RelatedTopics)
	if err != nil {
		return Outcome{Notice: Notice{Title: MsgValidationTitle, Description: MsgValidation, Destructive: true}}, err
	}

	if !v.submitting.CompareAndSwap(false, true) {
		return Outcome{}, ErrSubmitting
	}
	defer v.submitting.Store(false)

	if err := v.submitter.Submit(ctx, s); err != nil {
		v.logger.Error("failed to save related topics", zap.Int("question_id", s.ID), zap.Error(err))
		return Outcome{Notice: Notice{Title: MsgSubmitFailedTitle, Description: MsgSubmitFailed, Destructive: true}}, err
	}

	return Outcome{
		Notice:   Notice{Title: MsgSavedTitle, Description: MsgSaved},
		Redirect: ListPath,
	}, nil
}
