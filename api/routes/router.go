package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/palengkeproph/palengkeproph-backend/api/controllers"
	"github.com/palengkeproph/palengkeproph-backend/api/middleware"
	"github.com/palengkeproph/palengkeproph-backend/internal/auth"
	"github.com/palengkeproph/palengkeproph-backend/internal/users"
	"github.com/palengkeproph/palengkeproph-backend/pkg/config"
	"github.com/palengkeproph/palengkeproph-backend/pkg/db"
	"github.com/palengkeproph/palengkeproph-backend/pkg/logger"
	"github.com/palengkeproph/palengkeproph-backend/pkg/metrics"
	"github.com/palengkeproph/palengkeproph-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	dbP db.Pinger,
	redisClient *redis.Client,
	authService auth.Service,
	registerService auth.RegisterService,
	userService users.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.AllowedHosts(cfg.Server.AllowedHosts, logg),
		middleware.CORS(cfg.Server.CORSOrigins),
		chimiddleware.StripSlashes,
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		var redisP redis.Pinger
		if redisClient != nil {
			redisP = redisClient
		}
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.With(rateLimit(registerPolicy, redisClient, logg)).
			Post("/register", controllers.Register(registerService, logg))

		r.Route("/auth/token", func(r chi.Router) {
			r.With(rateLimit(loginPolicy, redisClient, logg)).
				Post("/", controllers.TokenObtain(authService, logg))
			r.Post("/refresh", controllers.TokenRefresh(authService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/", controllers.UserList(userService, logg))
			r.Post("/", controllers.Register(registerService, logg))
			r.Get("/me", controllers.UserMe(userService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.UserRetrieve(userService, logg))
				r.Put("/", controllers.UserUpdate(userService, logg))
				r.Patch("/", controllers.UserUpdate(userService, logg))
				r.Delete("/", controllers.UserDelete(userService, logg))
			})
		})
	})

	// Everything else belongs to the single-page app.
	r.NotFound(controllers.Frontend(cfg, logg))

	return r
}

// rateLimit keeps throttling optional; without a store the endpoints run
// unthrottled.
func rateLimit(policy middleware.AuthRateLimitPolicy, store *redis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	if store == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.AuthRateLimit(policy, store, logg)
}
