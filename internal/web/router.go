package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the page routes:
//
//	GET  /                list
//	GET  /question/{id}   annotation form
//	POST /question/{id}   save annotation
//	GET  /questions.csv   local CSV source, when configured
//	*                     not found
func NewRouter(h *Handler, logger *zap.Logger) *chi.Mux {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(Recovery(logger))
	r.Use(RequestLogger(logger))

	r.Get("/", h.List)
	r.Get("/question/{id}", h.Form)
	r.Post("/question/{id}", h.Save)
	r.Get("/questions.csv", h.CSV)

	r.NotFound(h.NotFound)

	return r
}
