package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is one newsletter subscription record, keyed by normalized email.
type Subscriber struct {
	ID                uuid.UUID
	Email             string
	VerificationToken string
	Verified          bool
	VerifiedAt        *time.Time
	ExpiresAt         time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TokenExpired reports whether the pending verification window has passed.
// Meaningless once Verified is true.
func (s *Subscriber) TokenExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
