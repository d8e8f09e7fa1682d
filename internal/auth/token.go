// ABOUTME: JWT minting and verification for access and refresh tokens
// ABOUTME: Uses HS256 signing with independent secrets per token kind

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/2389/campus-gateway/internal/store"
)

// Claims is the verified payload of a campus-gateway token.
type Claims struct {
	PrincipalID string
	Role        store.Role
}

// TokenPair bundles a short-lived access token and a longer-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenCodec signs and verifies HS256 JWTs against a single secret with a
// fixed lifetime. The access and refresh codecs differ only in secret and TTL.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a codec for the given secret and token lifetime.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: ttl}
}

// Generate creates a signed token carrying the principal id and role.
func (c *TokenCodec) Generate(principalID string, role store.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  principalID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify validates signature and expiry and extracts the claims.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return nil, fmt.Errorf("%w: role", ErrMissingClaim)
	}
	role := store.Role(roleStr)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, roleStr)
	}

	return &Claims{PrincipalID: sub, Role: role}, nil
}

// Issuer mints access/refresh token pairs. The refresh token is persisted
// onto the principal row before the pair is returned; a store failure aborts
// the whole issuance so a minted-but-unstored token can never reach a client.
type Issuer struct {
	access  *TokenCodec
	refresh *TokenCodec
	store   store.Store
}

// NewIssuer creates an Issuer over the two codecs and the principal store.
func NewIssuer(access, refresh *TokenCodec, s store.Store) *Issuer {
	return &Issuer{access: access, refresh: refresh, store: s}
}

// Issue mints a token pair for the principal and persists the refresh token,
// replacing any prior value.
func (i *Issuer) Issue(ctx context.Context, principalID string, role store.Role) (*TokenPair, error) {
	accessToken, err := i.access.Generate(principalID, role)
	if err != nil {
		return nil, fmt.Errorf("generating %s access token: %w", role, err)
	}

	refreshToken, err := i.refresh.Generate(principalID, role)
	if err != nil {
		return nil, fmt.Errorf("generating %s refresh token: %w", role, err)
	}

	if err := i.store.SetRefreshToken(ctx, role, principalID, refreshToken); err != nil {
		return nil, fmt.Errorf("persisting %s refresh token: %w", role, err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
