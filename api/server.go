/*
server.go - Router and middleware configuration

MIDDLEWARE STACK:
  1. Logger:    request logging
  2. Recoverer: panic recovery (500 instead of crash)
  3. RequestID: unique id per request for tracing
  4. CORS:      browser client on a different origin

No authentication: callers inside the deployment are trusted.
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates the router with all routes configured.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/interns", func(r chi.Router) {
			r.Get("/", h.ListInterns)
			r.Post("/", h.CreateIntern)
			r.Get("/{id}", h.GetIntern)
		})

		r.Route("/salary", func(r chi.Router) {
			r.Get("/realtime", h.RealtimeSalary)
			r.Get("/monthly", h.MonthlySalary)
			r.Get("/yearly", h.YearlySalary)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Get("/", h.ListLeave)
			r.Post("/", h.AddLeave)
			r.Delete("/{id}", h.RemoveLeave)
		})
	})

	return r
}
