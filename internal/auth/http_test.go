// ABOUTME: Tests for the HTTP authentication middleware
// ABOUTME: Covers token extraction precedence and 401 rejection paths

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2389/campus-gateway/internal/store"
)

func TestExtractAccessToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{
			name: "no token",
			want: "",
		},
		{
			name:   "cookie only",
			cookie: "cookie-token",
			want:   "cookie-token",
		},
		{
			name:   "bearer only",
			header: "Bearer header-token",
			want:   "header-token",
		},
		{
			name:   "cookie wins over bearer",
			cookie: "cookie-token",
			header: "Bearer header-token",
			want:   "cookie-token",
		},
		{
			name:   "non-bearer header ignored",
			header: "Basic dXNlcjpwYXNz",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			if got := ExtractAccessToken(r); got != tt.want {
				t.Errorf("ExtractAccessToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	svc, mock := newTestService(t)
	p := registerPrincipal(t, mock, store.RoleUser, "mw@x.com", "p1")

	_, pair, err := svc.Login(context.Background(), "mw@x.com", "p1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	var gotPrincipal *store.Principal
	handler := Middleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal = MustFromContext(r.Context()).Principal
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no token", func(t *testing.T) {
		gotPrincipal = nil
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		if gotPrincipal != nil {
			t.Error("handler should not have run")
		}
	})

	t.Run("valid cookie", func(t *testing.T) {
		gotPrincipal = nil
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: pair.AccessToken})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if gotPrincipal == nil || gotPrincipal.ID != p.ID {
			t.Errorf("context principal = %+v, want id %s", gotPrincipal, p.ID)
		}
	})

	t.Run("valid bearer header", func(t *testing.T) {
		gotPrincipal = nil
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if gotPrincipal == nil || gotPrincipal.ID != p.ID {
			t.Errorf("context principal = %+v, want id %s", gotPrincipal, p.ID)
		}
	})

	t.Run("bad cookie shadows good header", func(t *testing.T) {
		gotPrincipal = nil
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "garbage"})
		r.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401 (cookie takes precedence)", w.Code)
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		gotPrincipal = nil
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+pair.AccessToken+"x")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Error("FromContext() on empty context should return nil")
	}

	authCtx := &AuthContext{Principal: &store.Principal{ID: "p1", Role: store.RoleAdmin}}
	ctx := WithAuth(context.Background(), authCtx)

	got := FromContext(ctx)
	if got == nil || got.Principal.ID != "p1" {
		t.Errorf("FromContext() = %+v, want the attached context", got)
	}
	if !got.IsAdmin() {
		t.Error("IsAdmin() = false for admin principal")
	}
}
