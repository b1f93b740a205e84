package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "PALENGKE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Server        ServerConfig
	Frontend      FrontendConfig
	Redis         RedisConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"PALENGKE_APP_ENV" default:"dev"`
	Port     string `envconfig:"PALENGKE_APP_PORT" default:"8000"`
	Debug    bool   `envconfig:"PALENGKE_DEBUG" default:"false"`
	LogLevel string `envconfig:"PALENGKE_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"PALENGKE_DB_DSN"`

	Host     string `envconfig:"PALENGKE_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"PALENGKE_DB_PORT" default:"5432"`
	User     string `envconfig:"PALENGKE_DB_USER"`
	Password string `envconfig:"PALENGKE_DB_PASSWORD"`
	Name     string `envconfig:"PALENGKE_DB_NAME"`
	SSLMode  string `envconfig:"PALENGKE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PALENGKE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PALENGKE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PALENGKE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PALENGKE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// InsecureDefaultSecret is the development fallback signing key used when no
// secret is configured. Deployments must override it.
const InsecureDefaultSecret = "palengke-insecure-dev-signing-key"

type JWTConfig struct {
	Secret            string `envconfig:"PALENGKE_SECRET_KEY" default:"palengke-insecure-dev-signing-key"`
	Issuer            string `envconfig:"PALENGKE_JWT_ISSUER" default:"palengkeproph"`
	AccessTTLMinutes  int    `envconfig:"PALENGKE_JWT_ACCESS_TTL_MINUTES" default:"60"`
	RefreshTTLMinutes int    `envconfig:"PALENGKE_JWT_REFRESH_TTL_MINUTES" default:"1440"`
}

// AccessTTL returns the access token lifetime.
func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessTTLMinutes) * time.Minute
}

// RefreshTTL returns the refresh token lifetime.
func (j JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PALENGKE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PALENGKE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PALENGKE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PALENGKE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PALENGKE_ARGON_KEY_LEN" default:"32"`
}

type ServerConfig struct {
	AllowedHosts []string `envconfig:"PALENGKE_ALLOWED_HOSTS" default:"localhost,127.0.0.1"`
	CORSOrigins  []string `envconfig:"PALENGKE_CORS_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`
}

type FrontendConfig struct {
	BuildDir string `envconfig:"PALENGKE_FRONTEND_BUILD_DIR" default:"frontend/build"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PALENGKE_REDIS_URL"`
	DialTimeout  time.Duration `envconfig:"PALENGKE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PALENGKE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PALENGKE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis backend was configured at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PALENGKE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUserLimit     int           `envconfig:"PALENGKE_AUTH_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PALENGKE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PALENGKE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUserLimit  int           `envconfig:"PALENGKE_AUTH_RATE_LIMIT_REGISTER_USER_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PALENGKE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PALENGKE_AUTO_MIGRATE" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.User == "" || db.Name == "" {
		return fmt.Errorf("either PALENGKE_DB_DSN or PALENGKE_DB_USER and PALENGKE_DB_NAME are required")
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
