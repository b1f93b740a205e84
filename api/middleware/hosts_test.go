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

func TestAllowedHostsPassesListedHost(t *testing.T) {
	handler := AllowedHosts([]string{"api.example.com"}, nil)(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Host = "api.example.com:8080"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAllowedHostsRejectsUnknownHost(t *testing.T) {
	handler := AllowedHosts([]string{"api.example.com"}, nil)(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Host = "evil.example.net"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAllowedHostsWildcardDisablesCheck(t *testing.T) {
	handler := AllowedHosts([]string{"*"}, nil)(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Host = "anything.example.net"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAllowedHostsMatchesSubdomainPattern(t *testing.T) {
	handler := AllowedHosts([]string{".example.com"}, nil)(okHandler())

	for _, host := range []string{"example.com", "api.example.com"} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Host = host
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", host, rec.Code)
		}
	}
}
