package domain

import "errors"

// Subscription errors
var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrDuplicateEmail     = errors.New("subscriber email already exists")
	ErrAlreadySubscribed  = errors.New("email already subscribed")
	ErrInvalidToken       = errors.New("invalid verification token")
	ErrTokenExpired       = errors.New("verification token expired")
)

// Validation errors
var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidInput = errors.New("invalid input")
)

// Blog errors
var (
	ErrPostNotFound = errors.New("post not found")
)
