// ABOUTME: Authentication service: login, token verification, refresh rotation, logout
// ABOUTME: Dispatches principal lookups by the server-trusted role claim

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/2389/campus-gateway/internal/config"
	"github.com/2389/campus-gateway/internal/store"
)

// Service implements the authentication core over a principal store.
type Service struct {
	store   store.Store
	access  *TokenCodec
	refresh *TokenCodec
	issuer  *Issuer
	logger  *slog.Logger
}

// NewService wires the token codecs and issuer from the auth configuration.
func NewService(s store.Store, cfg config.AuthConfig, logger *slog.Logger) *Service {
	access := NewTokenCodec([]byte(cfg.AccessSecret), cfg.AccessTokenTTL)
	refresh := NewTokenCodec([]byte(cfg.RefreshSecret), cfg.RefreshTokenTTL)
	return &Service{
		store:   s,
		access:  access,
		refresh: refresh,
		issuer:  NewIssuer(access, refresh, s),
		logger:  logger.With("component", "auth"),
	}
}

// Issue mints and persists a token pair for an already-authenticated principal.
func (s *Service) Issue(ctx context.Context, principalID string, role store.Role) (*TokenPair, error) {
	return s.issuer.Issue(ctx, principalID, role)
}

// Login verifies credentials against the user partition first, then the
// admin partition, and on success mints a token pair. The returned principal
// is the projected row. An unknown email in both partitions yields
// store.ErrNotFound; a wrong password yields ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*store.Principal, *TokenPair, error) {
	var principal *store.Principal
	for _, role := range []store.Role{store.RoleUser, store.RoleAdmin} {
		p, err := s.store.GetPrincipalByEmail(ctx, role, email)
		if err == nil {
			principal = p
			break
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, nil, fmt.Errorf("looking up %s by email: %w", role, err)
		}
	}

	if principal == nil {
		CompareDummy(password)
		return nil, nil, store.ErrNotFound
	}

	if !VerifyPassword(password, principal.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuer.Issue(ctx, principal.ID, principal.Role)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("login", "role", principal.Role, "id", principal.ID)

	// Re-read through the projection so the returned principal carries no
	// credential fields.
	sanitized, err := s.store.GetPrincipal(ctx, principal.Role, principal.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("reloading %s after login: %w", principal.Role, err)
	}

	return sanitized, pair, nil
}

// Authenticate validates an access token and resolves it to a live principal.
// The role claim was embedded at issuance from the partition that
// authenticated the credentials, so the lookup consults only that partition;
// an id from the other partition simply misses and the token is rejected.
func (s *Service) Authenticate(ctx context.Context, token string) (*store.Principal, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.access.Verify(token)
	if err != nil {
		return nil, err
	}

	principal, err := s.store.GetPrincipal(ctx, claims.Role, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("resolving %s principal: %w", claims.Role, err)
	}

	return principal, nil
}

// Refresh exchanges a valid, still-registered refresh token for a new pair.
// The presented token must byte-equal the stored value; once a token has been
// rotated away (or the session logged out), re-presenting it fails with
// ErrTokenReuse. The old token dies the instant the new one is persisted.
func (s *Service) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	if presented == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.refresh.Verify(presented)
	if err != nil {
		return nil, err
	}

	stored, ok, err := s.store.GetRefreshToken(ctx, claims.Role, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("loading stored refresh token: %w", err)
	}

	// An unset stored token matches nothing, including the empty string.
	if !ok || stored != presented {
		s.logger.Warn("stale refresh token presented", "role", claims.Role, "id", claims.PrincipalID)
		return nil, ErrTokenReuse
	}

	pair, err := s.issuer.Issue(ctx, claims.PrincipalID, claims.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("refresh token rotated", "role", claims.Role, "id", claims.PrincipalID)
	return pair, nil
}

// Logout clears the principal's stored refresh token. Idempotent: a principal
// with no active session logs out successfully.
func (s *Service) Logout(ctx context.Context, role store.Role, principalID string) error {
	if err := s.store.ClearRefreshToken(ctx, role, principalID); err != nil {
		return fmt.Errorf("clearing %s refresh token: %w", role, err)
	}

	s.logger.Info("logout", "role", role, "id", principalID)
	return nil
}

// AccessTokenTTL exposes the configured access token lifetime for cookie expiry.
func (s *Service) AccessTokenTTL() time.Duration { return s.access.ttl }

// RefreshTokenTTL exposes the configured refresh token lifetime for cookie expiry.
func (s *Service) RefreshTokenTTL() time.Duration { return s.refresh.ttl }
