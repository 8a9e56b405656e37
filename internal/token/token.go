// Package token issues opaque verification tokens for newsletter
// double opt-in links.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const tokenBytes = 32

// Generate returns a URL-safe random token with 32 bytes of entropy.
// Tokens carry no structure; one leaking reveals nothing about others.
func Generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
