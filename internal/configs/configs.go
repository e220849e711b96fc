package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	AppURL                 string
	AppBaseURL             string
	Environment            string
	DatabaseDSN            string
	RateLimit              int
	RedisAddr              string
	SessionStore           string
	SessionKeyPrefix       string
	SessionTTLMinutes      int
	JWTSecret              string
	JWTIssuer              string
	JWTTTLMinutes          int
	ResetTokenTTLMinutes   int
	OAuthSessionSecret     string
	GoogleClientID         string
	GoogleClientSecret     string
	CORSOrigins            []string
	LogLevel               string
	ShutdownTimeoutSeconds int
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads .env (if any), the optional CONFIG_FILE, then the process environment.
func Load(log zerolog.Logger) Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to read config file")
		}
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", v.GetString("APP_HOST"), v.GetString("APP_PORT")),
		AppBaseURL:             strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
		Environment:            v.GetString("APP_ENV"),
		DatabaseDSN:            v.GetString("DATABASE_DSN"),
		RateLimit:              v.GetInt("RATE_LIMIT_PER_MINUTE"),
		RedisAddr:              fmt.Sprintf("%s:%s", v.GetString("REDIS_HOST"), v.GetString("REDIS_PORT")),
		SessionStore:           v.GetString("SESSION_STORE"),
		SessionKeyPrefix:       v.GetString("SESSION_KEY_PREFIX"),
		SessionTTLMinutes:      v.GetInt("SESSION_TTL_MINUTES"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		JWTTTLMinutes:          v.GetInt("JWT_TTL_MINUTES"),
		ResetTokenTTLMinutes:   v.GetInt("RESET_TOKEN_TTL_MINUTES"),
		OAuthSessionSecret:     v.GetString("OAUTH_SESSION_SECRET"),
		GoogleClientID:         v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:     v.GetString("GOOGLE_CLIENT_SECRET"),
		CORSOrigins:            splitList(v.GetString("CORS_ORIGINS")),
		LogLevel:               v.GetString("LOG_LEVEL"),
		ShutdownTimeoutSeconds: v.GetInt("SHUTDOWN_TIMEOUT_SECONDS"),
	}

	if err := validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_HOST", "127.0.0.1")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_BASE_URL", "http://127.0.0.1:8080/api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_DSN", "project-hub.db")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SESSION_STORE", "redis")
	v.SetDefault("SESSION_KEY_PREFIX", "project-hub:session:")
	v.SetDefault("SESSION_TTL_MINUTES", 180)
	v.SetDefault("JWT_ISSUER", "project-hub")
	v.SetDefault("JWT_TTL_MINUTES", 180)
	v.SetDefault("RESET_TOKEN_TTL_MINUTES", 180)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 20)
}

func validate(cfg Config) error {
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.SessionStore != "redis" && cfg.SessionStore != "memory" {
		return fmt.Errorf("SESSION_STORE must be redis or memory, got %q", cfg.SessionStore)
	}
	if cfg.SessionTTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be greater than 0")
	}
	if len(cfg.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if cfg.JWTTTLMinutes <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be greater than 0")
	}
	if cfg.ResetTokenTTLMinutes <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL_MINUTES must be greater than 0")
	}
	if cfg.GoogleClientID != "" && cfg.OAuthSessionSecret == "" {
		return fmt.Errorf("OAUTH_SESSION_SECRET is required when GOOGLE_CLIENT_ID is set")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
