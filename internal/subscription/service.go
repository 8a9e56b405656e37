// Package subscription implements the double opt-in newsletter lifecycle.
//
// A subscriber record moves Pending -> Verified exactly once. Concurrent
// requests for the same email are never coordinated in-process; the unique
// index on email and the affected-row count of conditional updates are the
// only synchronization primitives. Verification always wins over
// re-registration.
package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bistrohq/bistro-backend/internal/domain"
	"github.com/bistrohq/bistro-backend/internal/retry"
	"github.com/bistrohq/bistro-backend/internal/token"
	"github.com/bistrohq/bistro-backend/internal/validate"
)

// Store is the persistence contract the lifecycle depends on. InsertPending
// must surface a unique-violation as domain.ErrDuplicateEmail; the conditional
// updates must report affected-row counts atomically.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	GetByToken(ctx context.Context, token string) (*domain.Subscriber, error)
	InsertPending(ctx context.Context, sub *domain.Subscriber) error
	RotateToken(ctx context.Context, email, token string, expiresAt time.Time) (int64, error)
	MarkVerified(ctx context.Context, token string, verifiedAt time.Time) (int64, error)
}

// Notifier is the best-effort side effect boundary. Implementations log and
// swallow failures; nothing here may fail a subscription write.
type Notifier interface {
	SendVerification(ctx context.Context, email, token string)
	SendWelcome(ctx context.Context, email string)
}

// Config holds lifecycle tuning.
type Config struct {
	TokenTTL     time.Duration
	StoreTimeout time.Duration
	Retry        retry.Policy
}

// Service orchestrates the subscription state machine.
type Service struct {
	config   Config
	store    Store
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a new subscription service.
func NewService(config Config, store Store, notifier Notifier, logger *slog.Logger) *Service {
	if config.TokenTTL <= 0 {
		config.TokenTTL = 7 * 24 * time.Hour
	}
	if config.StoreTimeout <= 0 {
		config.StoreTimeout = 10 * time.Second
	}
	if config.Retry.MaxAttempts == 0 {
		config.Retry = retry.DefaultPolicy
	}
	return &Service{
		config:   config,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Register starts or restarts the opt-in flow for an email address.
//
// A fresh email gets a Pending record and a verification email. A repeat
// attempt while still Pending rotates the token and refreshes the expiry,
// invalidating any previously mailed link. A verified email is rejected with
// domain.ErrAlreadySubscribed and never mutated.
func (s *Service) Register(ctx context.Context, email string) error {
	if err := validate.Email(email); err != nil {
		return err
	}
	email = validate.NormalizeEmail(email)

	sub, err := s.getByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrSubscriberNotFound) {
		return err
	}

	if sub == nil {
		tok, err := token.Generate()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		pending := &domain.Subscriber{
			ID:                uuid.New(),
			Email:             email,
			VerificationToken: tok,
			ExpiresAt:         now.Add(s.config.TokenTTL),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		_, err = retry.Do(ctx, s.config.Retry, func(ctx context.Context) (struct{}, error) {
			opCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
			defer cancel()
			return struct{}{}, s.store.InsertPending(opCtx, pending)
		})
		if err == nil {
			s.logger.Info("subscription pending", "email", email)
			s.notifier.SendVerification(ctx, email, tok)
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			return err
		}

		// A concurrent register won the insert race. Re-read and continue as
		// if the record had existed all along.
		sub, err = s.getByEmail(ctx, email)
		if err != nil {
			return err
		}
	}

	if sub.Verified {
		return domain.ErrAlreadySubscribed
	}

	tok, err := token.Generate()
	if err != nil {
		return err
	}
	expiresAt := time.Now().UTC().Add(s.config.TokenTTL)

	rows, err := retry.Do(ctx, s.config.Retry, func(ctx context.Context) (int64, error) {
		opCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		defer cancel()
		return s.store.RotateToken(opCtx, email, tok, expiresAt)
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		// The record became verified between the read and the write.
		return domain.ErrAlreadySubscribed
	}

	s.logger.Info("verification token rotated", "email", email)
	s.notifier.SendVerification(ctx, email, tok)
	return nil
}

// Confirm redeems a verification link. Repeat visits to an already-redeemed
// link succeed idempotently; email clients prefetch links and users
// double-click.
func (s *Service) Confirm(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return domain.ErrInvalidToken
	}

	sub, err := s.getByToken(ctx, rawToken)
	if errors.Is(err, domain.ErrSubscriberNotFound) {
		return domain.ErrInvalidToken
	}
	if err != nil {
		return err
	}

	if sub.Verified {
		return nil
	}

	now := time.Now().UTC()
	if sub.TokenExpired(now) {
		return domain.ErrTokenExpired
	}

	rows, err := retry.Do(ctx, s.config.Retry, func(ctx context.Context) (int64, error) {
		opCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		defer cancel()
		return s.store.MarkVerified(opCtx, rawToken, now)
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		// Lost a race: either another confirm already won (idempotent success)
		// or a register rotated the token away (this link is stale).
		cur, err := s.getByEmail(ctx, sub.Email)
		if err != nil {
			if errors.Is(err, domain.ErrSubscriberNotFound) {
				return domain.ErrInvalidToken
			}
			return err
		}
		if cur.Verified {
			return nil
		}
		return domain.ErrInvalidToken
	}

	s.logger.Info("subscription verified", "email", sub.Email)
	s.notifier.SendWelcome(ctx, sub.Email)
	return nil
}

func (s *Service) getByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	return retry.Do(ctx, s.config.Retry, func(ctx context.Context) (*domain.Subscriber, error) {
		opCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		defer cancel()
		return s.store.GetByEmail(opCtx, email)
	})
}

func (s *Service) getByToken(ctx context.Context, tok string) (*domain.Subscriber, error) {
	return retry.Do(ctx, s.config.Retry, func(ctx context.Context) (*domain.Subscriber, error) {
		opCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
		defer cancel()
		return s.store.GetByToken(opCtx, tok)
	})
}
