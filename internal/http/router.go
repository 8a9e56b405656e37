package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bistrohq/bistro-backend/internal/config"
	"github.com/bistrohq/bistro-backend/internal/http/features/blog"
	"github.com/bistrohq/bistro-backend/internal/http/features/contact"
	"github.com/bistrohq/bistro-backend/internal/http/features/newsletter"
	"github.com/bistrohq/bistro-backend/internal/http/middleware"
	"github.com/bistrohq/bistro-backend/internal/httputil"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger             *slog.Logger
	Subscriptions      newsletter.Service
	Blog               blog.Service
	Contact            contact.Service
	RateLimitConfig    config.RateLimitConfig
	SecurityHeaders    config.SecurityHeadersConfig
	MaxRequestBodySize int64
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders(cfg.SecurityHeaders))
	r.Use(middleware.RequestSizeLimit(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	rateLimiters := middleware.CreateRateLimiters(cfg.RateLimitConfig, cfg.Logger)

	newsletterHandler := newsletter.NewHandler(cfg.Logger, cfg.Subscriptions)
	r.With(rateLimiters["subscribe"]).Post("/v1/newsletter/subscribe", newsletterHandler.Subscribe)
	r.With(rateLimiters["verify"]).Get("/v1/newsletter/verify", newsletterHandler.Verify)

	blogHandler := blog.NewHandler(cfg.Logger, cfg.Blog)
	r.Group(func(r chi.Router) {
		r.Use(rateLimiters["posts"])
		r.Get("/v1/posts", blogHandler.List)
		r.Get("/v1/posts/{slug}", blogHandler.Get)
	})

	contactHandler := contact.NewHandler(cfg.Logger, cfg.Contact)
	r.With(rateLimiters["contact"]).Post("/v1/contact", contactHandler.Submit)

	return r
}
