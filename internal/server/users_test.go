// ABOUTME: Tests for the admin user listing and deletion handlers
// ABOUTME: Verifies auth gating, projection, and not-found mapping

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/campus-gateway/internal/auth"
	"github.com/2389/campus-gateway/internal/store"
)

func TestListUsersRequiresAuth(t *testing.T) {
	h := newTestHarness(t)

	w := h.do(t, http.MethodGet, "/users/", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListUsers(t *testing.T) {
	h := newTestHarness(t)
	h.register(t, "first@x.com", "p1")
	h.register(t, "second@x.com", "p2")
	cookies := h.login(t, "first@x.com", "p1")

	w := h.do(t, http.MethodGet, "/users/", nil, cookies[auth.AccessTokenCookie])
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var users []store.Principal
	require.NoError(t, json.Unmarshal(raw, &users))
	require.Len(t, users, 2)

	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
		assert.Empty(t, u.RefreshToken)
	}

	// Secrets never appear in the wire form either
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, w.Body.String(), "refreshToken")
}

func TestDeleteUser(t *testing.T) {
	h := newTestHarness(t)
	h.register(t, "a@x.com", "p1")
	h.register(t, "victim@x.com", "p2")
	cookies := h.login(t, "a@x.com", "p1")

	victim, err := h.store.GetPrincipalByEmail(context.Background(), store.RoleUser, "victim@x.com")
	require.NoError(t, err)

	w := h.do(t, http.MethodDelete, "/users/"+victim.ID, nil, cookies[auth.AccessTokenCookie])
	require.Equal(t, http.StatusOK, w.Code)

	users, err := h.store.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0].Email)

	// Deleting again reports not found
	w = h.do(t, http.MethodDelete, "/users/"+victim.ID, nil, cookies[auth.AccessTokenCookie])
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUserRequiresAuth(t *testing.T) {
	h := newTestHarness(t)
	h.register(t, "a@x.com", "p1")

	victim, err := h.store.GetPrincipalByEmail(context.Background(), store.RoleUser, "a@x.com")
	require.NoError(t, err)

	w := h.do(t, http.MethodDelete, "/users/"+victim.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	users, err := h.store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
