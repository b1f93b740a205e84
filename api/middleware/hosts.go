package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/palengkeproph/palengkeproph-backend/api/responses"
	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
	"github.com/palengkeproph/palengkeproph-backend/pkg/logger"
)

// AllowedHosts rejects requests whose Host header is not on the allow list.
// A "*" entry or an empty list disables the check. Entries of the form
// ".example.com" match the domain and every subdomain.
func AllowedHosts(hosts []string, logg *logger.Logger) func(http.Handler) http.Handler {
	allowAll := len(hosts) == 0
	normalized := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "*" {
			allowAll = true
			continue
		}
		if h != "" {
			normalized = append(normalized, h)
		}
	}

	return func(next http.Handler) http.Handler {
		if allowAll {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hostAllowed(r.Host, normalized) {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "Invalid host header.").
						WithDetails(map[string]string{"detail": "Invalid host header."}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hostAllowed(host string, allowed []string) bool {
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	for _, entry := range allowed {
		if strings.HasPrefix(entry, ".") {
			if host == strings.TrimPrefix(entry, ".") || strings.HasSuffix(host, entry) {
				return true
			}
			continue
		}
		if host == entry {
			return true
		}
	}
	return false
}
