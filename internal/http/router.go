package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tally/internal/http/document"
	"github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	"github.com/MrJamesThe3rd/tally/internal/http/record"
	"github.com/MrJamesThe3rd/tally/internal/http/report"
)

type Handlers struct {
	Records   *record.Handler
	Reports   *report.Handler
	Documents *document.Handler
	Import    *importcsv.Handler
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Records.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)
		r.Route("/documents", h.Documents.Routes)
		r.Route("/import", h.Import.Routes)
	})

	if h.Metrics != nil {
		router.Handle("/metrics", h.Metrics)
	}

	return router
}
