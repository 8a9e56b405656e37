package retry

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bistrohq/bistro-backend/internal/domain"
)

// Retryable reports whether a failed operation is worth attempting again.
// The rules encode production incidents; change them with care.
//
//   - auth failures: a bad credential never fixes itself.
//   - constraint violations: the input is the problem, not the infrastructure.
//   - not found: absence is a legitimate outcome, not a fault.
//   - everything else (timeouts, network errors, 5xx): transient.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	// The caller gave up; more attempts only waste the request budget.
	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, domain.ErrSubscriberNotFound) ||
		errors.Is(err, domain.ErrPostNotFound) ||
		errors.Is(err, domain.ErrDuplicateEmail) {
		return false
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	if strings.Contains(msg, "JWT") || strings.Contains(lower, "auth") {
		return false
	}
	if strings.Contains(lower, "violates") || strings.Contains(lower, "constraint") {
		return false
	}
	if strings.Contains(lower, "not found") {
		return false
	}

	return true
}
