package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Every API route passes through trace id, access
// logging, metrics and gzip; writes additionally require a bearer token.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", h.metrics.handler())

	router.Route("/api", func(api chi.Router) {
		api.Use(h.withTraceID, h.withLogging, h.withMetrics, withGZip)

		api.Get("/version/", h.getServerVersion)

		api.Route("/user", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.With(h.auth).Get("/me", h.me)
		})

		api.Route("/notes", func(r chi.Router) {
			r.With(h.auth).Post("/", h.createNote)
			r.With(h.optionalAuth).Post("/query", h.queryNotes)
			r.With(h.optionalAuth).Get("/{id}", h.getNote)
			r.With(h.auth).Patch("/{id}", h.updateNote)
			r.With(h.auth).Delete("/{id}", h.deleteNote)
		})

		api.Route("/files", func(r chi.Router) {
			r.With(h.auth).Post("/*", h.uploadFile)
			r.Get("/*", h.downloadFile)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
