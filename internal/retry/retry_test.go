package retry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bistrohq/bistro-backend/internal/domain"
)

var testPolicy = Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), testPolicy, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want %q", result, "ok")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_RetriesTransientError(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), testPolicy, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("connection reset by peer")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if result != 42 {
		t.Errorf("result = %d, want 42", result)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	transient := errors.New("i/o timeout")
	_, err := Do(context.Background(), testPolicy, func(ctx context.Context) (int, error) {
		calls++
		return 0, transient
	})
	if !errors.Is(err, transient) {
		t.Fatalf("err = %v, want %v", err, transient)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "JWT error", err: errors.New("JWT expired")},
		{name: "auth error", err: errors.New("authentication failed")},
		{name: "constraint violation", err: errors.New(`duplicate key value violates unique constraint "subscribers_email_key"`)},
		{name: "not found message", err: errors.New("row not found")},
		{name: "no rows sentinel", err: sql.ErrNoRows},
		{name: "wrapped duplicate sentinel", err: fmt.Errorf("%w: insert failed", domain.ErrDuplicateEmail)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			_, err := Do(context.Background(), testPolicy, func(ctx context.Context) (int, error) {
				calls++
				return 0, tt.err
			})
			if !errors.Is(err, tt.err) && err.Error() != tt.err.Error() {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
			if calls != 1 {
				t.Errorf("calls = %d, want exactly 1 for non-retryable error", calls)
			}
		})
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	transient := errors.New("connection refused")

	_, err := Do(ctx, Policy{MaxAttempts: 3, BaseDelay: time.Minute}, func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, transient
	})
	if !errors.Is(err, transient) {
		t.Fatalf("err = %v, want last operation error %v", err, transient)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (backoff should abort on cancel)", calls)
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "network blip", err: errors.New("connection reset by peer"), want: true},
		{name: "timeout", err: context.DeadlineExceeded, want: true},
		{name: "server error", err: errors.New("unexpected status 503"), want: true},
		{name: "JWT", err: errors.New("JWT malformed"), want: false},
		{name: "auth lowercase", err: errors.New("unauthorized request"), want: false},
		{name: "violates", err: errors.New("new row violates check constraint"), want: false},
		{name: "constraint", err: errors.New("foreign key constraint failed"), want: false},
		{name: "not found", err: errors.New("resource not found"), want: false},
		{name: "subscriber sentinel", err: domain.ErrSubscriberNotFound, want: false},
		{name: "post sentinel", err: fmt.Errorf("load post: %w", domain.ErrPostNotFound), want: false},
		{name: "cancelled", err: context.Canceled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
