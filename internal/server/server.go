// ABOUTME: HTTP server and route table for campus-gateway
// ABOUTME: Wires handlers, auth middleware, store, and mailer together

package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/2389/campus-gateway/internal/auth"
	"github.com/2389/campus-gateway/internal/config"
	"github.com/2389/campus-gateway/internal/mail"
	"github.com/2389/campus-gateway/internal/store"
)

// Server is the campus-gateway HTTP server.
type Server struct {
	cfg    *config.Config
	store  store.Store
	auth   *auth.Service
	mailer mail.Mailer
	logger *slog.Logger
	mux    *http.ServeMux

	httpServer *http.Server
}

// New creates a Server with its route table installed. mailer may be nil when
// the contact form is disabled.
func New(cfg *config.Config, st store.Store, authSvc *auth.Service, mailer mail.Mailer, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		store:  st,
		auth:   authSvc,
		mailer: mailer,
		logger: logger.With("component", "server"),
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

// routes installs the route table. Authenticated routes run behind the
// access-token middleware.
func (s *Server) routes() {
	authed := auth.Middleware(s.auth)

	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Public user routes
	s.mux.HandleFunc("POST /users/register", s.handleRegister)
	s.mux.HandleFunc("POST /users/login", s.handleLogin)
	s.mux.HandleFunc("POST /users/refresh-token", s.handleRefreshToken)
	s.mux.HandleFunc("POST /users/contact", s.handleContact)

	// Secured user routes
	s.mux.Handle("POST /users/logout", authed(http.HandlerFunc(s.handleLogout)))
	s.mux.Handle("GET /users/{$}", authed(http.HandlerFunc(s.handleListUsers)))
	s.mux.Handle("DELETE /users/{id}", authed(http.HandlerFunc(s.handleDeleteUser)))
	s.mux.Handle("GET /users/pdfs", authed(http.HandlerFunc(s.handleListPDFs)))
	s.mux.Handle("GET /users/view/{filename}", authed(http.HandlerFunc(s.handleViewPDF)))
	s.mux.Handle("GET /users/download/{filename}", authed(http.HandlerFunc(s.handleDownloadPDF)))

	// Admin routes
	s.mux.HandleFunc("POST /admin/register-admin", s.handleRegisterAdmin)
	s.mux.Handle("POST /admin/logout", authed(http.HandlerFunc(s.handleLogout)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "ok"})
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Server.HTTPAddr,
		Handler: s.mux,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.cfg.Server.HTTPAddr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case serverErr = <-errCh:
		s.logger.Error("HTTP server failed", "error", serverErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	shutdownErr := s.httpServer.Shutdown(shutdownCtx)

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}
