// ABOUTME: Authentication context for tracking identity through request handlers
// ABOUTME: Provides WithAuth/FromContext for propagating auth info via context

package auth

import (
	"context"

	"github.com/2389/campus-gateway/internal/store"
)

// AuthContext holds the authenticated identity extracted from a request.
// This is populated by the middleware and can be retrieved from context in
// handlers. Principal is the projected row: no credential fields.
type AuthContext struct {
	Principal *store.Principal
}

// IsAdmin returns true if the principal belongs to the admin partition.
func (a *AuthContext) IsAdmin() bool {
	return a.Principal != nil && a.Principal.Role == store.RoleAdmin
}

// authContextKey is the key type for storing AuthContext in context.Context.
type authContextKey struct{}

// WithAuth returns a new context with the AuthContext attached.
func WithAuth(ctx context.Context, auth *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, auth)
}

// FromContext retrieves the AuthContext from the context, returning nil if not present.
func FromContext(ctx context.Context) *AuthContext {
	val := ctx.Value(authContextKey{})
	if val == nil {
		return nil
	}
	auth, ok := val.(*AuthContext)
	if !ok {
		return nil
	}
	return auth
}

// MustFromContext retrieves the AuthContext from the context, panicking if not present.
func MustFromContext(ctx context.Context) *AuthContext {
	auth := FromContext(ctx)
	if auth == nil {
		panic("auth: AuthContext not found in context")
	}
	return auth
}
