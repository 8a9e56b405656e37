// Package blog exposes the read side of the marketing site's blog.
package blog

import (
	"context"
	"time"

	"github.com/bistrohq/bistro-backend/internal/domain"
	"github.com/bistrohq/bistro-backend/internal/retry"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store is the persistence contract for post reads.
type Store interface {
	ListPublished(ctx context.Context, limit, offset int) ([]domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
}

// Config holds service tuning.
type Config struct {
	StoreTimeout time.Duration
	Retry        retry.Policy
}

// Service wraps post reads in the shared retrier. A missing post is a
// legitimate outcome, so the classifier stops retries on it immediately.
type Service struct {
	config Config
	store  Store
}

// NewService creates a new blog service.
func NewService(config Config, store Store) *Service {
	if config.StoreTimeout <= 0 {
		config.StoreTimeout = 10 * time.Second
	}
	if config.Retry.MaxAttempts == 0 {
		config.Retry = retry.DefaultPolicy
	}
	return &Service{config: config, store: store}
}

// List returns a page of published posts, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return retry.Do(ctx, s.config.Retry, func(ctx context.Context) ([]domain.Post, error) {
		opCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		defer cancel()
		return s.store.ListPublished(opCtx, limit, offset)
	})
}

// Get returns a single published post by slug.
func (s *Service) Get(ctx context.Context, slug string) (*domain.Post, error) {
	return retry.Do(ctx, s.config.Retry, func(ctx context.Context) (*domain.Post, error) {
		opCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		defer cancel()
		return s.store.GetBySlug(opCtx, slug)
	})
}
