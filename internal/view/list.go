// Package view holds the state and transitions of the question list and
// annotation form, independent of how they are rendered.
package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ppiankov/questionbank/internal/ingest"
	"github.com/ppiankov/questionbank/internal/model"
	"github.com/ppiankov/questionbank/internal/pager"
	"go.uber.org/zap"
)

// User-visible load errors
const (
	MsgLoadFailed  = "Failed to load questions"
	MsgParseFailed = "Failed to parse CSV file"
)

// Loader supplies the question list (repository.Repository satisfies it)
type Loader interface {
	Load(ctx context.Context) ([]model.Question, error)
}

// Navigation is a move to another view carrying a question as state
type Navigation struct {
	Path     string
	Question model.Question
}

// QuestionPath is the form route for id
func QuestionPath(id int) string {
	return "/question/" + strconv.Itoa(id)
}

// ListView is the paginated question list
type ListView struct {
	loader Loader
	logger *zap.Logger

	questions []model.Question
	pager     *pager.Pager
	loading   bool
	errMsg    string
}

// ListOption configures a ListView
type ListOption func(*ListView)

// WithListLogger sets the logger
func WithListLogger(logger *zap.Logger) ListOption {
	return func(v *ListView) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewListView creates a list view in the loading state
func NewListView(loader Loader, opts ...ListOption) *ListView {
	v := &ListView{
		loader:  loader,
		logger:  zap.NewNop(),
		pager:   pager.New(0),
		loading: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load fetches the list once. Any failure leaves the view with a single
// error message and no questions.
func (v *ListView) Load(ctx context.Context) error {
	v.loading = true
	defer func() { v.loading = false }()

	questions, err := v.loader.Load(ctx)
	if err != nil {
		v.errMsg = LoadErrorMessage(err)
		v.questions = nil
		v.pager = pager.New(0)
		v.logger.Error("failed to load questions", zap.Error(err))
		return err
	}

	v.errMsg = ""
	v.questions = questions
	v.pager = pager.New(len(questions))
	return nil
}

// LoadErrorMessage maps a load error to the message shown to the user
func LoadErrorMessage(err error) string {
	if errors.Is(err, ingest.ErrParseFailure) {
		return MsgParseFailed
	}
	return MsgLoadFailed
}

// SetPage moves to page n; out-of-range pages are ignored
func (v *ListView) SetPage(n int) bool {
	return v.pager.SetPage(n)
}

// Next moves forward one page if possible
func (v *ListView) Next() bool {
	return v.pager.Next()
}

// Prev moves back one page if possible
func (v *ListView) Prev() bool {
	return v.pager.Prev()
}

// Select returns the navigation to the annotation form for the question
// with id. Only questions in the loaded list can be selected.
func (v *ListView) Select(id int) (Navigation, error) {
	for _, q := range v.questions {
		if q.ID == id {
			return Navigation{Path: QuestionPath(q.ID), Question: q}, nil
		}
	}
	return Navigation{}, fmt.Errorf("question %d not in list", id)
}

// ListState is a snapshot for rendering
type ListState struct {
	Loading    bool
	Error      string
	Questions  []model.Question // current page only
	Total      int
	Page       int
	TotalPages int
	First      int // 1-based index of the first item on the page
	Last       int // 1-based index of the last item on the page
	HasPrev    bool
	HasNext    bool
	ShowPager  bool
}

// State returns the current snapshot
func (v *ListView) State() ListState {
	start, end := v.pager.Bounds()
	return ListState{
		Loading:    v.loading,
		Error:      v.errMsg,
		Questions:  pager.Slice(v.pager, v.questions),
		Total:      len(v.questions),
		Page:       v.pager.Current(),
		TotalPages: v.pager.TotalPages(),
		First:      start + 1,
		Last:       end,
		HasPrev:    v.pager.HasPrev(),
		HasNext:    v.pager.HasNext(),
		ShowPager:  v.pager.TotalPages() > 1,
	}
}
