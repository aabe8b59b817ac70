// Package apperrors defines the error kinds surfaced to API callers. Raw
// store errors are never exposed; services translate everything into one of
// these sentinels or return it untyped for a generic failure response.
package apperrors

import "errors"

var (
	// ErrUnauthenticated is returned when a gated operation is invoked
	// without a resolvable caller identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound is returned when a referenced id has no matching record
	// and the operation requires it to exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned on signin failure. Unknown email
	// and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
