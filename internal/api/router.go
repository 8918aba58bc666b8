package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/marcelofalero/swse-architech/internal/auth"
	"github.com/marcelofalero/swse-architech/internal/middleware"
)

// RouterConfig carries the pieces of server configuration the router
// needs beyond the handler itself.
type RouterConfig struct {
	SessionSecret  string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	// Readiness is probed by /health when set. A failing probe turns
	// the health check into a 503.
	Readiness func(ctx context.Context) error
}

// NewRouter assembles the HTTP surface. Authentication is resolved for
// every request but never enforced here; handlers that require a
// principal reject anonymous callers themselves so that missing and
// forbidden resources stay indistinguishable.
func NewRouter(h *Handler, tokens *auth.TokenService, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(h.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	r.Use(middleware.Authenticate(tokens, cfg.SessionSecret, h.logger))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if cfg.Readiness != nil {
			if err := cfg.Readiness(req.Context()); err != nil {
				h.logger.Error("health probe failed", "error", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/federated", h.FederatedLogin)
		r.Get("/me", h.Me)
	})

	r.Route("/types", func(r chi.Router) {
		r.Get("/", h.ListTypes)
		r.Post("/", h.CreateType)
		r.Get("/{typeName}", h.GetType)
	})

	r.Route("/groups", func(r chi.Router) {
		r.Post("/", h.CreateGroup)
		r.Get("/{groupID}/members", h.ListGroupMembers)
		r.Post("/{groupID}/members", h.AddGroupMember)
		r.Delete("/{groupID}/members/{userID}", h.RemoveGroupMember)
	})

	r.Route("/{resourceType}", func(r chi.Router) {
		r.Get("/", h.ListResources)
		r.Post("/", h.CreateResource)
		r.Get("/{resourceID}", h.GetResource)
		r.Put("/{resourceID}", h.UpdateResource)
		r.Delete("/{resourceID}", h.DeleteResource)
		r.Patch("/{resourceID}/share", h.ShareResource)
	})

	return r
}
