package blog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bistrohq/bistro-backend/internal/domain"
)

type fakeService struct {
	posts  []domain.Post
	post   *domain.Post
	err    error
	limit  int
	offset int
}

func (f *fakeService) List(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	f.limit, f.offset = limit, offset
	return f.posts, f.err
}

func (f *fakeService) Get(ctx context.Context, slug string) (*domain.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.post, nil
}

func newTestRouter(svc Service) http.Handler {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	r.Get("/v1/posts", h.List)
	r.Get("/v1/posts/{slug}", h.Get)
	return r
}

func TestList(t *testing.T) {
	published := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &fakeService{posts: []domain.Post{
		{Slug: "summer-menu", Title: "Summer Menu", Excerpt: "New dishes", PublishedAt: &published},
	}}

	req := httptest.NewRequest("GET", "/v1/posts?limit=5&offset=10", nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp ListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Posts) != 1 || resp.Posts[0].Slug != "summer-menu" {
		t.Errorf("resp = %+v, want one summer-menu post", resp)
	}
	if svc.limit != 5 || svc.offset != 10 {
		t.Errorf("pagination = (%d, %d), want (5, 10)", svc.limit, svc.offset)
	}
}

func TestList_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/posts", nil)
	w := httptest.NewRecorder()
	newTestRouter(&fakeService{}).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	// An empty list serializes as [], not null.
	if body := w.Body.String(); !json.Valid([]byte(body)) || body == `{"posts":null}` {
		t.Errorf("body = %s, want empty posts array", body)
	}
}

func TestGet(t *testing.T) {
	svc := &fakeService{post: &domain.Post{Slug: "summer-menu", Title: "Summer Menu", Body: "..."}}

	req := httptest.NewRequest("GET", "/v1/posts/summer-menu", nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp PostDetail
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Slug != "summer-menu" {
		t.Errorf("slug = %q, want summer-menu", resp.Slug)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := &fakeService{err: domain.ErrPostNotFound}

	req := httptest.NewRequest("GET", "/v1/posts/missing", nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGet_StorageFailure(t *testing.T) {
	svc := &fakeService{err: errors.New("pq: connection refused")}

	req := httptest.NewRequest("GET", "/v1/posts/summer-menu", nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
