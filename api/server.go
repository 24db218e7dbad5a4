/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/leases/*         Lease lifecycle and schedule
  /api/periods/*        Payment period status updates
  /api/health           Liveness probe

SECURITY NOTE:
  Organization scoping is enforced per request via the X-Org-Id header,
  but there is no authentication middleware. Front it with an auth proxy
  in production.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Org-Id", "X-User-Id"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Lease routes
		r.Route("/leases", func(r chi.Router) {
			r.Get("/", h.ListLeases)
			r.Post("/", h.CreateLease)
			r.Get("/{id}", h.GetLease)
			r.Put("/{id}", h.EditLease)
			r.Delete("/{id}", h.DeleteLease)
			r.Post("/{id}/terminate", h.TerminateLease)
			r.Get("/{id}/periods", h.ListPeriods)
			r.Post("/{id}/periods/regenerate", h.RegenerateSchedule)
			r.Get("/{id}/next-payment", h.NextPayment)
			r.Get("/{id}/charges", h.ListCharges)
			r.Get("/{id}/documents", h.ListDocuments)
		})

		// Period routes
		r.Route("/periods", func(r chi.Router) {
			r.Post("/{id}/paid", h.MarkPeriodPaid)
			r.Post("/{id}/overdue", h.MarkPeriodOverdue)
		})

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
