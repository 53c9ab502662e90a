package api

import (
	"net/http"

	"github.com/avelis/coachflow/internal/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the API routes with the standard middleware stack.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Post("/chat", h.HandleChat)
		r.Post("/workflow", h.HandleWorkflow)
	})

	return r
}
