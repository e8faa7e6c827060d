package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ConfigError reports a missing or malformed environment value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Message)
}

type Env struct {
	AppAddr string
	GinMode string

	DBDriver string
	DBDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string

	RedisURL string
	CacheTTL time.Duration

	LogLevel  string
	LogFormat string

	// Timezone is used when rendering dates on documents.
	Timezone string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// LoadEnv reads configuration from the process environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	env := Env{
		AppAddr:   getenv("APP_ADDR", ":8080"),
		GinMode:   getenv("GIN_MODE", ""),
		DBDriver:  strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DBDSN:     getenv("DB_DSN", ""),
		JWTSecret: getenv("JWT_SECRET", ""),
		RedisURL:  getenv("REDIS_URL", ""),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "text")),
		Timezone:  getenv("APP_TIMEZONE", "America/Sao_Paulo"),
	}

	var err error
	if env.JWTTTL, err = durationEnv("JWT_TTL", 24*time.Hour); err != nil {
		return env, err
	}
	if env.CacheTTL, err = durationEnv("CACHE_TTL", time.Minute); err != nil {
		return env, err
	}

	env.CORSOrigins = defaultOrigins
	if raw := getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		env.CORSOrigins = splitList(raw)
	}

	return env, env.Validate()
}

// Validate checks required fields on an already-built Env.
func (e Env) Validate() error {
	switch e.DBDriver {
	case "postgres", "mysql":
	default:
		return &ConfigError{Field: "DB_DRIVER", Message: "must be postgres or mysql"}
	}
	if e.DBDSN == "" {
		return &ConfigError{Field: "DB_DSN", Message: "required but not set"}
	}
	if e.JWTSecret == "" && e.GinMode != "debug" {
		return &ConfigError{Field: "JWT_SECRET", Message: "required outside debug mode"}
	}
	if len(e.CORSOrigins) == 0 {
		return &ConfigError{Field: "CORS_ALLOWED_ORIGINS", Message: "must list at least one origin"}
	}
	if e.LogFormat != "text" && e.LogFormat != "json" {
		return &ConfigError{Field: "LOG_FORMAT", Message: "must be text or json"}
	}
	return nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key, "")
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, &ConfigError{Field: key, Message: "must be a positive duration like 30s or 24h"}
	}
	return d, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
