// Package validate holds the input validation shared by the newsletter and
// contact surfaces.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/bistrohq/bistro-backend/internal/domain"
)

// Stricter than RFC 5322 for practical use; rejects addresses that parse but
// never belong on a mailing list.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

const maxEmailLength = 254 // RFC 5321

// NormalizeEmail lowercases and trims an email address. All storage is keyed
// by the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Email validates an address for format and length. The input is normalized
// before checking; callers should store NormalizeEmail(email).
func Email(email string) error {
	if email == "" {
		return fmt.Errorf("%w: address is required", domain.ErrInvalidEmail)
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("%w: address is too long (max %d characters)", domain.ErrInvalidEmail, maxEmailLength)
	}

	normalized := NormalizeEmail(email)
	addr, err := mail.ParseAddress(normalized)
	if err != nil {
		return fmt.Errorf("%w: malformed address", domain.ErrInvalidEmail)
	}
	if !emailRegex.MatchString(addr.Address) {
		return fmt.Errorf("%w: malformed address", domain.ErrInvalidEmail)
	}
	return nil
}
