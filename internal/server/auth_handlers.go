// ABOUTME: Handlers for registration, login, token refresh, and logout
// ABOUTME: Sets and clears the accessToken/refreshToken cookie pair

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389/campus-gateway/internal/auth"
	"github.com/2389/campus-gateway/internal/store"
)

type registerRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Course      string `json:"course"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	User         *store.Principal `json:"user"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	Role         store.Role       `json:"role"`
}

// handleRegister creates a user principal. All fields but phoneNumber are
// required; validation runs before any store write.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if anyBlank(req.FullName, req.Email, req.Course, req.Password) {
		s.writeError(w, validationErrorf("all fields are required"))
		return
	}

	s.createPrincipal(w, r, &req, store.RoleUser, "User registered successfully")
}

// handleRegisterAdmin creates an admin principal. The course field does not
// apply; phoneNumber is required here, matching the admin signup form.
func (s *Server) handleRegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if anyBlank(req.FullName, req.Email, req.Password, req.PhoneNumber) {
		s.writeError(w, validationErrorf("all fields are required"))
		return
	}
	req.Course = ""

	s.createPrincipal(w, r, &req, store.RoleAdmin, "Admin registered successfully")
}

func (s *Server) createPrincipal(w http.ResponseWriter, r *http.Request, req *registerRequest, role store.Role, message string) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	p := &store.Principal{
		ID:           uuid.NewString(),
		Email:        req.Email,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Course:       req.Course,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreatePrincipal(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}

	created, err := s.store.GetPrincipal(r.Context(), role, p.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, apiResponse{Success: true, Message: message, Data: created})
}

// handleLogin verifies credentials against the user partition first, then the
// admin partition, and returns the token pair plus both cookies.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if anyBlank(req.Email, req.Password) {
		s.writeError(w, validationErrorf("email and password are required"))
		return
	}

	principal, pair, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.setTokenCookies(w, pair)
	s.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Logged in successfully",
		Data: loginResponse{
			User:         principal,
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			Role:         principal.Role,
		},
	})
}

// handleRefreshToken rotates the refresh token. The token may arrive in the
// refreshToken cookie or the request body.
func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	presented := ""
	if cookie, err := r.Cookie(auth.RefreshTokenCookie); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var req refreshRequest
		// A missing body is fine when the cookie is absent too; the empty
		// token is rejected below as unauthenticated.
		_ = decodeJSON(r, &req)
		presented = req.RefreshToken
	}

	pair, err := s.auth.Refresh(r.Context(), presented)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.setTokenCookies(w, pair)
	s.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Access token refreshed",
		Data:    pair,
	})
}

// handleLogout clears the stored refresh token and both cookies.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())
	principal := authCtx.Principal

	if err := s.auth.Logout(r.Context(), principal.Role, principal.ID); err != nil {
		s.writeError(w, err)
		return
	}

	s.clearTokenCookies(w)
	s.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Logged out successfully",
		Data:    map[string]store.Role{"role": principal.Role},
	})
}

// setTokenCookies sets the httpOnly token pair. Secure is set only in
// production so local development over plain HTTP still works.
func (s *Server) setTokenCookies(w http.ResponseWriter, pair *auth.TokenPair) {
	secure := s.cfg.Server.Production()
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		Expires:  time.Now().Add(s.auth.AccessTokenTTL()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     auth.RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		Expires:  time.Now().Add(s.auth.RefreshTokenTTL()),
	})
}

func (s *Server) clearTokenCookies(w http.ResponseWriter) {
	secure := s.cfg.Server.Production()
	for _, name := range []string{auth.AccessTokenCookie, auth.RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			MaxAge:   -1,
		})
	}
}

// anyBlank reports whether any value is empty after trimming whitespace.
func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
