// ABOUTME: Tests for registration, login, refresh, and logout handlers
// ABOUTME: Includes the end-to-end register/login/refresh scenario

package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/campus-gateway/internal/auth"
	"github.com/2389/campus-gateway/internal/store"
)

func TestRegisterValidation(t *testing.T) {
	h := newTestHarness(t)

	tests := []struct {
		name string
		req  registerRequest
	}{
		{
			name: "blank password",
			req:  registerRequest{FullName: "A", Email: "a@x.com", Course: "c", Password: ""},
		},
		{
			name: "whitespace password",
			req:  registerRequest{FullName: "A", Email: "a@x.com", Course: "c", Password: "   "},
		},
		{
			name: "missing email",
			req:  registerRequest{FullName: "A", Course: "c", Password: "p1"},
		},
		{
			name: "missing course",
			req:  registerRequest{FullName: "A", Email: "a@x.com", Password: "p1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.do(t, http.MethodPost, "/users/register", tt.req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}

	// Validation failures must not write to the store
	users, err := h.store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 0 {
		t.Errorf("store contains %d users after failed registrations, want 0", len(users))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newTestHarness(t)
	h.register(t, "dup@x.com", "p1")

	w := h.do(t, http.MethodPost, "/users/register", registerRequest{
		FullName: "B", Email: "dup@x.com", Course: "c", Password: "p2",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestRegisterDoesNotLeakSecrets(t *testing.T) {
	h := newTestHarness(t)

	w := h.do(t, http.MethodPost, "/users/register", registerRequest{
		FullName: "A", Email: "a@x.com", Course: "c", Password: "p1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := w.Body.String()
	assert.NotContains(t, body, "p1")
	assert.NotContains(t, body, "passwordHash")
	assert.NotContains(t, body, "$2a$")
}

func TestRegisterAdmin(t *testing.T) {
	h := newTestHarness(t)

	// phoneNumber is required for admins
	w := h.do(t, http.MethodPost, "/admin/register-admin", registerRequest{
		FullName: "Root", Email: "root@x.com", Password: "secret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodPost, "/admin/register-admin", registerRequest{
		FullName: "Root", Email: "root@x.com", Password: "secret", PhoneNumber: "5550100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Admin lands in the admin partition, not the user listing
	users, err := h.store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoginFailures(t *testing.T) {
	h := newTestHarness(t)
	h.register(t, "a@x.com", "p1")

	w := h.do(t, http.MethodPost, "/users/login", loginRequest{Email: "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing password")

	w = h.do(t, http.MethodPost, "/users/login", loginRequest{Email: "nobody@x.com", Password: "p1"})
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown email")

	w = h.do(t, http.MethodPost, "/users/login", loginRequest{Email: "a@x.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "wrong password")
}

func TestRegisterLoginRefreshScenario(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	// Register
	h.register(t, "a@x.com", "p1")

	users, err := h.store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	stored, err := h.store.GetPrincipalByEmail(ctx, store.RoleUser, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", stored.PasswordHash, "password must be stored hashed")

	// Login: 200, both cookies, role user
	w := h.do(t, http.MethodPost, "/users/login", loginRequest{Email: "a@x.com", Password: "p1"})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := map[string]*http.Cookie{}
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, auth.AccessTokenCookie)
	require.Contains(t, cookies, auth.RefreshTokenCookie)
	assert.True(t, cookies[auth.AccessTokenCookie].HttpOnly)
	assert.False(t, cookies[auth.AccessTokenCookie].Secure, "secure only in production")

	resp := decodeEnvelope(t, w)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "user", data["role"])

	oldRefresh := cookies[auth.RefreshTokenCookie]

	// Refresh with the cookie: new pair, cookies reset
	w = h.do(t, http.MethodPost, "/users/refresh-token", nil, oldRefresh)
	require.Equal(t, http.StatusOK, w.Code)

	var newRefresh *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.RefreshTokenCookie {
			newRefresh = c
		}
	}
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, oldRefresh.Value, newRefresh.Value)

	// The consumed token is dead
	w = h.do(t, http.MethodPost, "/users/refresh-token", nil, oldRefresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The rotated token still works, via request body this time
	w = h.do(t, http.MethodPost, "/users/refresh-token", refreshRequest{RefreshToken: newRefresh.Value})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshWithoutToken(t *testing.T) {
	h := newTestHarness(t)

	w := h.do(t, http.MethodPost, "/users/refresh-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	h := newTestHarness(t)
	h.register(t, "a@x.com", "p1")
	cookies := h.login(t, "a@x.com", "p1")

	w := h.do(t, http.MethodPost, "/users/logout", nil, cookies[auth.AccessTokenCookie])
	require.Equal(t, http.StatusOK, w.Code)

	// Both cookies cleared
	cleared := 0
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			cleared++
		}
	}
	assert.Equal(t, 2, cleared)

	// The pre-logout refresh token no longer refreshes
	w = h.do(t, http.MethodPost, "/users/refresh-token", nil, cookies[auth.RefreshTokenCookie])
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout again with a fresh login is still fine (idempotent clear)
	cookies = h.login(t, "a@x.com", "p1")
	w = h.do(t, http.MethodPost, "/users/logout", nil, cookies[auth.AccessTokenCookie])
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminLogout(t *testing.T) {
	h := newTestHarness(t)

	w := h.do(t, http.MethodPost, "/admin/register-admin", registerRequest{
		FullName: "Root", Email: "root@x.com", Password: "secret", PhoneNumber: "5550100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	cookies := h.login(t, "root@x.com", "secret")
	w = h.do(t, http.MethodPost, "/admin/logout", nil, cookies[auth.AccessTokenCookie])
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "admin", data["role"])
}
