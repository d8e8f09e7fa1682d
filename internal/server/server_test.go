// ABOUTME: Test harness for the HTTP API
// ABOUTME: Runs handlers against MockStore with a recording mailer

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2389/campus-gateway/internal/auth"
	"github.com/2389/campus-gateway/internal/config"
	"github.com/2389/campus-gateway/internal/mail"
	"github.com/2389/campus-gateway/internal/store"
)

// recordingMailer captures contact messages instead of sending them.
type recordingMailer struct {
	sent []mail.ContactMessage
	err  error
}

func (m *recordingMailer) SendContact(ctx context.Context, msg mail.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testHarness struct {
	server *Server
	store  *store.MockStore
	mailer *recordingMailer
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{HTTPAddr: "127.0.0.1:0", Environment: "development"},
		Database: config.DatabaseConfig{Path: "unused"},
		Auth: config.AuthConfig{
			AccessSecret:    "test-access-secret",
			RefreshSecret:   "test-refresh-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		PDFs: config.PDFConfig{Dir: t.TempDir()},
	}

	mock := store.NewMockStore()
	mailer := &recordingMailer{}
	authSvc := auth.NewService(mock, cfg.Auth, slog.Default())
	srv := New(cfg, mock, authSvc, mailer, slog.Default())

	return &testHarness{server: srv, store: mock, mailer: mailer}
}

// do runs a JSON request through the route table.
func (h *testHarness) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(w, r)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return resp
}

// register creates a user through the API and fails the test on error.
func (h *testHarness) register(t *testing.T, email, password string) {
	t.Helper()
	w := h.do(t, http.MethodPost, "/users/register", registerRequest{
		FullName:    "A",
		Email:       email,
		Course:      "c",
		PhoneNumber: "5550100",
		Password:    password,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}
}

// login logs in and returns the response cookies keyed by name.
func (h *testHarness) login(t *testing.T, email, password string) map[string]*http.Cookie {
	t.Helper()
	w := h.do(t, http.MethodPost, "/users/login", loginRequest{Email: email, Password: password})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}

	cookies := make(map[string]*http.Cookie)
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

func TestHarnessSmoke(t *testing.T) {
	h := newTestHarness(t)
	h.register(t, "smoke@x.com", "p1")

	users, err := h.store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("store contains %d users, want 1", len(users))
	}
}

var errMailDown = errors.New("smtp connection refused")
