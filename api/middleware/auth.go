package middleware

import (
	"net/http"
	"strings"

	"github.com/palengkeproph/palengkeproph-backend/api/responses"
	pkgauth "github.com/palengkeproph/palengkeproph-backend/pkg/auth"
	"github.com/palengkeproph/palengkeproph-backend/pkg/config"
	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
	"github.com/palengkeproph/palengkeproph-backend/pkg/logger"
)

// Auth validates a bearer access token and seeds the request context with the
// caller's user id. Refresh tokens are rejected here; they are only accepted
// by the refresh endpoint.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication credentials were not provided."))
				return
			}

			if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication credentials were not provided."))
				return
			}
			token := strings.TrimSpace(raw[7:])
			if token == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication credentials were not provided."))
				return
			}

			claims, err := pkgauth.ParseToken(cfg, token, pkgauth.TokenTypeAccess)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Token is invalid or expired"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
