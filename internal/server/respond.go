// ABOUTME: JSON response envelope and error-to-status mapping
// ABOUTME: Translates typed errors from the core into structured responses

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2389/campus-gateway/internal/auth"
	"github.com/2389/campus-gateway/internal/store"
)

// apiResponse is the envelope for every JSON response.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// validationError marks a missing or malformed request field. Maps to 400.
type validationError struct {
	msg string
}

func (e validationError) Error() string { return e.msg }

func validationErrorf(msg string) error { return validationError{msg: msg} }

func (s *Server) writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// writeError maps a typed error from the core to its status code and a
// client-safe message. Internal failures are logged, never echoed.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var vErr validationError

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
		message = vErr.msg
	case errors.Is(err, store.ErrDuplicateEmail):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, auth.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = auth.ErrUnauthenticated.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = auth.ErrInvalidCredentials.Error()
	case errors.Is(err, auth.ErrTokenReuse):
		status = http.StatusUnauthorized
		message = auth.ErrTokenReuse.Error()
	case errors.Is(err, auth.ErrExpiredToken):
		status = http.StatusUnauthorized
		message = auth.ErrExpiredToken.Error()
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingClaim):
		status = http.StatusUnauthorized
		message = auth.ErrInvalidToken.Error()
	default:
		s.logger.Error("request failed", "error", err)
	}

	s.writeJSON(w, status, apiResponse{Success: false, Message: message})
}

// decodeJSON decodes a request body into dst, surfacing malformed JSON as a
// validation error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return validationErrorf("invalid request body")
	}
	return nil
}
