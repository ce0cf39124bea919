// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for operator authentication.
var (
	// ErrInvalidCredentials indicates that the provided operator name or
	// password is incorrect. Returned during login.
	ErrInvalidCredentials = errors.New("invalid operator name or password")

	// ErrNotConfigured indicates that operator credentials are not set on
	// the server, so login cannot succeed for anyone.
	ErrNotConfigured = errors.New("operator credentials not configured")
)
