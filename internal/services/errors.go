package services

import "errors"

// Authentication failure taxonomy. Handlers collapse all of these except
// ErrIncompleteIdentity into one uniform unauthorized response; the specific
// value exists for internal logging and tests only and must never be echoed
// to the caller.
var (
	ErrInvalidAssertion     = errors.New("invalid identity assertion")
	ErrUnknownIdentity      = errors.New("unknown identity")
	ErrInactiveIdentity     = errors.New("identity is inactive")
	ErrMissingClientContext = errors.New("client address unavailable")

	ErrTokenNotFound = errors.New("refresh token not found")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenRevoked  = errors.New("refresh token revoked")

	// ErrIncompleteIdentity is a server-side fault: a linked identity must
	// have a display name before it can be issued an access token.
	ErrIncompleteIdentity = errors.New("identity has no display name")
)
