package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthDisabledPassesThrough(t *testing.T) {
	cfg := &AuthConfig{Enabled: false}
	handler := Auth(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthChecksCredentials(t *testing.T) {
	cfg := &AuthConfig{Enabled: true, User: "admin", Password: "secret"}
	handler := Auth(cfg)(okHandler())

	tests := []struct {
		name       string
		user, pass string
		noCreds    bool
		want       int
	}{
		{name: "valid", user: "admin", pass: "secret", want: http.StatusOK},
		{name: "wrong password", user: "admin", pass: "nope", want: http.StatusUnauthorized},
		{name: "wrong user", user: "root", pass: "secret", want: http.StatusUnauthorized},
		{name: "no credentials", noCreds: true, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			if !tt.noCreds {
				req.SetBasicAuth(tt.user, tt.pass)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("got %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestAuthExcludedPaths(t *testing.T) {
	cfg := &AuthConfig{Enabled: true, User: "admin", Password: "secret"}
	handler := Auth(cfg, "/health", "/debug/*")(okHandler())

	tests := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/debug/pprof", http.StatusOK},
		{"/status", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != tt.want {
			t.Errorf("%s: got %d, want %d", tt.path, w.Code, tt.want)
		}
	}
}

func TestAuthConfigUpdate(t *testing.T) {
	cfg := &AuthConfig{Enabled: false}
	handler := Auth(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 while disabled, got %d", w.Code)
	}

	cfg.Update(true, "admin", "secret")

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after enabling auth, got %d", w.Code)
	}
}
