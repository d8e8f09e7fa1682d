// ABOUTME: Sentinel errors for the authentication core
// ABOUTME: The HTTP boundary maps these to status codes

package auth

import "errors"

var (
	// ErrUnauthenticated means no token or credentials were presented.
	ErrUnauthenticated = errors.New("unauthorized request")

	// ErrInvalidToken covers bad signature, malformed token, and unknown
	// principal.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken means the token's exp claim has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenReuse means the presented refresh token no longer matches the
	// stored one: it was already rotated away or the session was logged out.
	ErrTokenReuse = errors.New("refresh token is expired or used")

	// ErrInvalidCredentials means the password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingClaim means a required claim is absent from the payload.
	ErrMissingClaim = errors.New("missing required claim")
)
