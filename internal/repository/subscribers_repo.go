package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/bistrohq/bistro-backend/internal/domain"
)

// SubscribersRepository owns all read/write access to newsletter subscriber
// records. Callers never mutate rows directly; state transitions happen only
// through the conditional operations below, whose affected-row counts are the
// race detectors for the subscription lifecycle.
type SubscribersRepository struct {
	db *sql.DB
}

// NewSubscribersRepository creates a new subscribers repository.
func NewSubscribersRepository(db *sql.DB) *SubscribersRepository {
	return &SubscribersRepository{db: db}
}

const subscriberColumns = `id, email, verification_token, verified, verified_at, expires_at, created_at, updated_at`

func scanSubscriber(row *sql.Row) (*domain.Subscriber, error) {
	sub := &domain.Subscriber{}
	err := row.Scan(
		&sub.ID, &sub.Email, &sub.VerificationToken, &sub.Verified,
		&sub.VerifiedAt, &sub.ExpiresAt, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSubscriberNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// GetByEmail retrieves a subscriber by normalized email.
func (r *SubscribersRepository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := `
		SELECT ` + subscriberColumns + `
		FROM subscribers
		WHERE email = $1
	`
	return scanSubscriber(r.db.QueryRowContext(ctx, query, email))
}

// GetByToken retrieves a subscriber by its current verification token.
func (r *SubscribersRepository) GetByToken(ctx context.Context, token string) (*domain.Subscriber, error) {
	query := `
		SELECT ` + subscriberColumns + `
		FROM subscribers
		WHERE verification_token = $1
	`
	return scanSubscriber(r.db.QueryRowContext(ctx, query, token))
}

// InsertPending creates a new unverified subscriber. A concurrent insert for
// the same email loses against the unique index on email; that case surfaces
// as domain.ErrDuplicateEmail so the caller can treat it as a race signal
// rather than a hard failure.
func (r *SubscribersRepository) InsertPending(ctx context.Context, sub *domain.Subscriber) error {
	query := `
		INSERT INTO subscribers (id, email, verification_token, verified, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, false, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.Email, sub.VerificationToken, sub.ExpiresAt, sub.CreatedAt, sub.UpdatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return fmt.Errorf("%w: %v", domain.ErrDuplicateEmail, err)
	}
	return err
}

// RotateToken replaces the verification token and refreshes the expiry window
// for a still-unverified subscriber. Returns the number of rows updated; zero
// means the record became verified between the caller's read and this write.
func (r *SubscribersRepository) RotateToken(ctx context.Context, email, token string, expiresAt time.Time) (int64, error) {
	query := `
		UPDATE subscribers
		SET verification_token = $2, expires_at = $3, updated_at = NOW()
		WHERE email = $1 AND verified = false
	`
	result, err := r.db.ExecContext(ctx, query, email, token, expiresAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// MarkVerified flips a pending subscriber to verified, keyed by token.
// Returns the number of rows updated; zero means another confirm already won
// or the token was rotated out from under the caller.
func (r *SubscribersRepository) MarkVerified(ctx context.Context, token string, verifiedAt time.Time) (int64, error) {
	query := `
		UPDATE subscribers
		SET verified = true, verified_at = $2, updated_at = NOW()
		WHERE verification_token = $1 AND verified = false
	`
	result, err := r.db.ExecContext(ctx, query, token, verifiedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
