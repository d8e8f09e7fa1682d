// ABOUTME: HTTP middleware for access-token authentication
// ABOUTME: Cookie takes precedence over the Authorization header

package auth

import (
	"errors"
	"net/http"
	"strings"
)

// AccessTokenCookie and RefreshTokenCookie are the cookie names the login
// handler sets and this middleware reads.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// ExtractAccessToken pulls the access token from the request. The secure
// cookie wins over an Authorization: Bearer header; empty string means no
// token was presented.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

// Middleware returns an HTTP middleware that authenticates the request's
// access token and attaches the resolved principal to the request context.
// Requests without a valid token are rejected with 401 and the pipeline halts.
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractAccessToken(r)
			if token == "" {
				writeUnauthorized(w, ErrUnauthenticated.Error())
				return
			}

			principal, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				writeUnauthorized(w, messageFor(err))
				return
			}

			authCtx := &AuthContext{Principal: principal}
			next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), authCtx)))
		})
	}
}

// messageFor maps an authentication error to its client-facing message.
// Unexpected store errors are not echoed to the client.
func messageFor(err error) string {
	switch {
	case errors.Is(err, ErrExpiredToken):
		return ErrExpiredToken.Error()
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrMissingClaim):
		return ErrInvalidToken.Error()
	case errors.Is(err, ErrUnauthenticated):
		return ErrUnauthenticated.Error()
	default:
		return ErrInvalidToken.Error()
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}
