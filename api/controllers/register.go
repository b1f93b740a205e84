package controllers

import (
	"net/http"

	"github.com/palengkeproph/palengkeproph-backend/api/responses"
	"github.com/palengkeproph/palengkeproph-backend/api/validators"
	"github.com/palengkeproph/palengkeproph-backend/internal/auth"
	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
	"github.com/palengkeproph/palengkeproph-backend/pkg/logger"
)

// Register creates a new user account and returns its public representation.
// The same handler backs the public registration route and the authenticated
// user-creation route; both accept the same payload.
func Register(reg auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable"))
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := reg.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}
