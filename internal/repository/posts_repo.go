package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bistrohq/bistro-backend/internal/domain"
)

// PostsRepository handles blog post reads. Authoring is out of scope; posts
// arrive in the table through a separate admin pipeline.
type PostsRepository struct {
	db *sql.DB
}

// NewPostsRepository creates a new posts repository.
func NewPostsRepository(db *sql.DB) *PostsRepository {
	return &PostsRepository{db: db}
}

// ListPublished returns published posts, newest first.
func (r *PostsRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	query := `
		SELECT id, slug, title, excerpt, body, published_at, created_at, updated_at
		FROM posts
		WHERE published_at IS NOT NULL AND published_at <= NOW()
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Body,
			&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetBySlug retrieves a single published post by slug.
func (r *PostsRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	query := `
		SELECT id, slug, title, excerpt, body, published_at, created_at, updated_at
		FROM posts
		WHERE slug = $1 AND published_at IS NOT NULL AND published_at <= NOW()
	`
	p := &domain.Post{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Body,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
