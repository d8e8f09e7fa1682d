// ABOUTME: Store interface and data types for campus-gateway persistence
// ABOUTME: Defines the Principal struct and the partitioned principal store operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested principal does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when the email is already registered in the
// same partition
var ErrDuplicateEmail = errors.New("email already registered")

// Role selects the principal partition. It is fixed at registration and
// embedded into every token minted for the principal.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r names a known partition.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Principal represents an account in either partition. PasswordHash and
// RefreshToken are populated only by GetPrincipalByEmail; projected reads
// (GetPrincipal, ListUsers) leave them zero so they can never leak through a
// handler response.
type Principal struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Course      string    `json:"course,omitempty"` // users only
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`

	PasswordHash string `json:"-"`
	// RefreshToken is the single outstanding refresh token, empty when the
	// stored column is NULL. HasRefreshToken distinguishes NULL from "".
	RefreshToken    string `json:"-"`
	HasRefreshToken bool   `json:"-"`
}

// Store defines the partitioned principal persistence operations. The role
// argument selects the users or admins table; implementations never fall back
// to the other partition on a miss.
type Store interface {
	// CreatePrincipal inserts a new principal into the partition named by
	// p.Role. Returns ErrDuplicateEmail if the email exists in that partition.
	CreatePrincipal(ctx context.Context, p *Principal) error

	// GetPrincipal retrieves a principal by ID with credential and
	// refresh-token fields excluded from the projection.
	GetPrincipal(ctx context.Context, role Role, id string) (*Principal, error)

	// GetPrincipalByEmail retrieves the full row, including the password hash
	// and refresh token, for credential verification.
	GetPrincipalByEmail(ctx context.Context, role Role, email string) (*Principal, error)

	// GetRefreshToken returns the stored refresh token for a principal. ok is
	// false when no token is set (NULL), which never matches any presented
	// value, including the empty string.
	GetRefreshToken(ctx context.Context, role Role, id string) (token string, ok bool, err error)

	// SetRefreshToken atomically overwrites the principal's refresh token.
	SetRefreshToken(ctx context.Context, role Role, id, token string) error

	// ClearRefreshToken unsets the refresh token (NULL, not empty string).
	// Clearing an already-clear token succeeds.
	ClearRefreshToken(ctx context.Context, role Role, id string) error

	// ListUsers returns all principals in the user partition (projected).
	ListUsers(ctx context.Context) ([]*Principal, error)

	// DeleteUser removes a user principal. Returns ErrNotFound on a miss.
	DeleteUser(ctx context.Context, id string) error
}
