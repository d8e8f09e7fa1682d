// ABOUTME: Admin-facing handlers for listing and deleting user principals
// ABOUTME: Operates on the user partition only

package server

import (
	"net/http"
)

// handleListUsers returns all user principals (projected rows).
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: users})
}

// handleDeleteUser removes a user principal by ID.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "User deleted successfully"})
}
