package models

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but is not the owner or author.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound also covers resources that exist but are outside the caller's visibility,
	// e.g. a trip that is not shared.
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrPayloadTooLarge   = errors.New("payload too large")
	ErrDuplicateEmail    = errors.New("this email is already registered")
	ErrInvalidCredential = errors.New("invalid password")
	ErrInvalidToken      = errors.New("invalid token")
	// ErrUpstream wraps failures reported by an external provider.
	ErrUpstream = errors.New("upstream error")
	// ErrParse is returned when a provider answered but not in the expected shape.
	ErrParse         = errors.New("unexpected provider response")
	ErrNotConfigured = errors.New("not configured")
)
