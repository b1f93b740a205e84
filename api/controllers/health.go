package controllers

import (
	"net/http"

	"github.com/palengkeproph/palengkeproph-backend/api/responses"
	"github.com/palengkeproph/palengkeproph-backend/pkg/config"
	"github.com/palengkeproph/palengkeproph-backend/pkg/db"
	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
	"github.com/palengkeproph/palengkeproph-backend/pkg/logger"
	"github.com/palengkeproph/palengkeproph-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Palengke-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when the database, and the rate-limit
// store when one is configured, answer a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Palengke-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
