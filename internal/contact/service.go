// Package contact persists contact form submissions.
package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bistrohq/bistro-backend/internal/domain"
	"github.com/bistrohq/bistro-backend/internal/retry"
	"github.com/bistrohq/bistro-backend/internal/validate"
)

const (
	maxNameLength    = 200
	maxMessageLength = 5000
)

// Store is the persistence contract for contact messages.
type Store interface {
	Insert(ctx context.Context, msg *domain.ContactMessage) error
}

// Config holds service tuning.
type Config struct {
	StoreTimeout time.Duration
	Retry        retry.Policy
}

// Service validates and stores contact submissions, retrying transient
// storage failures like every other write path.
type Service struct {
	config Config
	store  Store
}

// NewService creates a new contact service.
func NewService(config Config, store Store) *Service {
	if config.StoreTimeout <= 0 {
		config.StoreTimeout = 10 * time.Second
	}
	if config.Retry.MaxAttempts == 0 {
		config.Retry = retry.DefaultPolicy
	}
	return &Service{config: config, store: store}
}

// Submit validates and persists one contact form submission.
func (s *Service) Submit(ctx context.Context, name, email, message string) error {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)

	if err := validate.Email(email); err != nil {
		return err
	}
	if message == "" {
		return fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	if len(message) > maxMessageLength {
		return fmt.Errorf("%w: message is too long (max %d characters)", domain.ErrInvalidInput, maxMessageLength)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name is too long (max %d characters)", domain.ErrInvalidInput, maxNameLength)
	}

	msg := &domain.ContactMessage{
		ID:        uuid.New(),
		Name:      name,
		Email:     validate.NormalizeEmail(email),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	_, err := retry.Do(ctx, s.config.Retry, func(ctx context.Context) (struct{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		defer cancel()
		return struct{}{}, s.store.Insert(opCtx, msg)
	})
	return err
}
