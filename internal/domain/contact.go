package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a submission from the site contact form.
type ContactMessage struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
