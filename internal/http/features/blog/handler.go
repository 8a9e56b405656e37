package blog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bistrohq/bistro-backend/internal/domain"
	"github.com/bistrohq/bistro-backend/internal/httputil"
)

// Service is the blog read surface consumed by this handler.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]domain.Post, error)
	Get(ctx context.Context, slug string) (*domain.Post, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service}
}

type PostSummary struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type PostDetail struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type ListResponse struct {
	Posts []PostSummary `json:"posts"`
}

// List returns published posts, newest first.
// GET /v1/posts?limit=&offset=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	posts, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list posts", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to load posts")
		return
	}

	resp := ListResponse{Posts: make([]PostSummary, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, PostSummary{
			Slug:        p.Slug,
			Title:       p.Title,
			Excerpt:     p.Excerpt,
			PublishedAt: p.PublishedAt,
		})
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// Get returns a single published post.
// GET /v1/posts/{slug}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.service.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			httputil.Error(w, http.StatusNotFound, "post not found")
			return
		}
		h.logger.Error("failed to load post", "error", err, "slug", slug)
		httputil.Error(w, http.StatusInternalServerError, "failed to load post")
		return
	}

	httputil.JSON(w, http.StatusOK, PostDetail{
		Slug:        post.Slug,
		Title:       post.Title,
		Excerpt:     post.Excerpt,
		Body:        post.Body,
		PublishedAt: post.PublishedAt,
	})
}
