// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	mu     sync.RWMutex
	users  map[string]*Principal // keyed by ID
	admins map[string]*Principal // keyed by ID
}

// Ensure MockStore implements Store.
var _ Store = (*MockStore)(nil)

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		users:  make(map[string]*Principal),
		admins: make(map[string]*Principal),
	}
}

func (m *MockStore) partition(role Role) map[string]*Principal {
	if role == RoleAdmin {
		return m.admins
	}
	return m.users
}

// CreatePrincipal stores a new principal in its partition.
func (m *MockStore) CreatePrincipal(ctx context.Context, p *Principal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	part := m.partition(p.Role)
	email := strings.ToLower(p.Email)
	for _, existing := range part {
		if existing.Email == email {
			return ErrDuplicateEmail
		}
	}

	// Make a copy to avoid external modification
	cp := *p
	cp.Email = email
	part[cp.ID] = &cp
	p.Email = email

	return nil
}

// GetPrincipal retrieves a principal by ID with secrets zeroed.
func (m *MockStore) GetPrincipal(ctx context.Context, role Role, id string) (*Principal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.partition(role)[id]
	if !ok {
		return nil, ErrNotFound
	}

	return projected(p), nil
}

// GetPrincipalByEmail retrieves the full principal row by email.
func (m *MockStore) GetPrincipalByEmail(ctx context.Context, role Role, email string) (*Principal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email = strings.ToLower(email)
	for _, p := range m.partition(role) {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}

	return nil, ErrNotFound
}

// GetRefreshToken returns the stored refresh token and whether one is set.
func (m *MockStore) GetRefreshToken(ctx context.Context, role Role, id string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.partition(role)[id]
	if !ok {
		return "", false, ErrNotFound
	}

	return p.RefreshToken, p.HasRefreshToken, nil
}

// SetRefreshToken overwrites the principal's refresh token.
func (m *MockStore) SetRefreshToken(ctx context.Context, role Role, id, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.partition(role)[id]
	if !ok {
		return ErrNotFound
	}

	p.RefreshToken = token
	p.HasRefreshToken = true
	return nil
}

// ClearRefreshToken unsets the principal's refresh token.
func (m *MockStore) ClearRefreshToken(ctx context.Context, role Role, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.partition(role)[id]
	if !ok {
		return ErrNotFound
	}

	p.RefreshToken = ""
	p.HasRefreshToken = false
	return nil
}

// ListUsers returns all user principals (projected), newest first.
func (m *MockStore) ListUsers(ctx context.Context) ([]*Principal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*Principal, 0, len(m.users))
	for _, p := range m.users {
		users = append(users, projected(p))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	return users, nil
}

// DeleteUser removes a user principal by ID.
func (m *MockStore) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}

	delete(m.users, id)
	return nil
}

// projected returns a copy with the credential and refresh-token fields zeroed.
func projected(p *Principal) *Principal {
	cp := *p
	cp.PasswordHash = ""
	cp.RefreshToken = ""
	cp.HasRefreshToken = false
	return &cp
}
