package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is a published blog article. Authoring happens outside this service;
// only the read path is exposed here.
type Post struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	Excerpt     string
	Body        string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
