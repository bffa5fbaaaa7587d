package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/ppiankov/questionbank/internal/model"
	"github.com/ppiankov/questionbank/internal/submit"
	"github.com/ppiankov/questionbank/internal/view"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

// Questions is the session question list (repository.Repository satisfies it)
type Questions interface {
	Load(ctx context.Context) ([]model.Question, error)
	Find(id int) (model.Question, bool)
}

// Handler renders the list, form and fallback pages
type Handler struct {
	questions Questions
	submitter view.Submitter
	logger    *zap.Logger
	csvPath   string
	printer   *message.Printer
	templates map[string]*template.Template

	inflight sync.Map // question id -> *atomic.Bool
}

// NewHandler creates the page handlers. csvPath, when set, is served at /questions.csv.
func NewHandler(questions Questions, submitter view.Submitter, logger *zap.Logger, csvPath string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	templates := make(map[string]*template.Template)
	for _, name := range []string{"list", "form", "message"} {
		templates[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}

	return &Handler{
		questions: questions,
		submitter: submitter,
		logger:    logger,
		csvPath:   csvPath,
		printer:   message.NewPrinter(language.English),
		templates: templates,
	}
}

type page struct {
	Title  string
	Notice *view.Notice
}

type listPage struct {
	page
	State     view.ListState
	TotalText string
	PrevPage  int
	NextPage  int
}

type formFields struct {
	Question      string
	Subject       string
	RelatedTopics string
}

type formPage struct {
	page
	Target model.Question
	Form   formFields
}

type messagePage struct {
	page
	Heading     string
	Message     string
	Detail      string
	Destructive bool
	BackText    string
}

// List renders one page of questions. ?page=N selects the page; values
// outside the valid range are ignored.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	v := view.NewListView(h.questions, view.WithListLogger(h.logger))
	if err := v.Load(r.Context()); err != nil {
		h.render(w, http.StatusInternalServerError, "message", messagePage{
			page:        page{Title: "Error"},
			Message:     v.State().Error,
			Destructive: true,
		})
		return
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			v.SetPage(n)
		}
	}

	st := v.State()
	data := listPage{
		page:      page{Title: "Questions"},
		State:     st,
		TotalText: h.printer.Sprintf("%d", st.Total),
		PrevPage:  st.Page - 1,
		NextPage:  st.Page + 1,
	}
	if r.URL.Query().Get("saved") == "1" {
		data.Notice = &view.Notice{Title: view.MsgSavedTitle, Description: view.MsgSaved}
	}

	h.render(w, http.StatusOK, "list", data)
}

// Form renders the annotation form for /question/{id}
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	form, ok := h.openForm(w, r)
	if !ok {
		return
	}
	h.renderForm(w, http.StatusOK, form, nil)
}

// Save handles the form POST
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	form, ok := h.openForm(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form.Question = r.PostForm.Get("question")
	form.Subject = r.PostForm.Get("subject")
	form.RelatedTopics = r.PostForm.Get("relatedTopics")

	out, err := form.Submit(r.Context())
	switch {
	case err == nil:
		http.Redirect(w, r, out.Redirect+"?saved=1", http.StatusSeeOther)
	case errors.Is(err, submit.ErrValidation):
		h.renderForm(w, http.StatusUnprocessableEntity, form, &out.Notice)
	case errors.Is(err, view.ErrSubmitting):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.renderForm(w, http.StatusBadGateway, form, &out.Notice)
	}
}

// CSV serves the configured local questions file
func (h *Handler) CSV(w http.ResponseWriter, r *http.Request) {
	if h.csvPath == "" {
		h.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	http.ServeFile(w, r, h.csvPath)
}

// NotFound is the catch-all page
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("route not found", zap.String("path", r.URL.Path))
	h.render(w, http.StatusNotFound, "message", messagePage{
		page:     page{Title: "Not Found"},
		Heading:  "404",
		Message:  "Oops! Page not found",
		Detail:   "The page you're looking for doesn't exist or has been moved.",
		BackText: "Return to Home",
	})
}

// openForm resolves {id} against the loaded list. The question comes from
// the session repository, so a hard refresh of the form route still works.
func (h *Handler) openForm(w http.ResponseWriter, r *http.Request) (*view.FormView, bool) {
	var target *model.Question
	var opts []view.FormOption

	if id, err := strconv.Atoi(chi.URLParam(r, "id")); err == nil {
		if _, err := h.questions.Load(r.Context()); err != nil {
			h.logger.Error("failed to load questions", zap.Error(err))
		} else if q, ok := h.questions.Find(id); ok {
			target = &q
			opts = append(opts, view.WithSubmitGuard(h.guardFor(id)))
		}
	}

	form := view.NewFormView(target, h.submitter, h.logger, opts...)
	if !form.Found() {
		h.render(w, http.StatusNotFound, "message", messagePage{
			page:     page{Title: "Not Found"},
			Message:  view.MsgQuestionNotFound,
			BackText: "Back to Questions",
		})
		return nil, false
	}
	return form, true
}

// guardFor returns the in-flight flag shared by every request for id
func (h *Handler) guardFor(id int) *atomic.Bool {
	flag, _ := h.inflight.LoadOrStore(id, new(atomic.Bool))
	return flag.(*atomic.Bool)
}

func (h *Handler) renderForm(w http.ResponseWriter, status int, form *view.FormView, notice *view.Notice) {
	target, _ := form.Target()
	h.render(w, status, "form", formPage{
		page:   page{Title: "Question #" + strconv.Itoa(target.ID), Notice: notice},
		Target: target,
		Form: formFields{
			Question:      form.Question,
			Subject:       form.Subject,
			RelatedTopics: form.RelatedTopics,
		},
	})
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
