package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort             = "8080"
	defaultAccessExpMins    = 15
	defaultRefreshExpDays   = 7
	defaultDirectoryTimeout = 5 * time.Second
	defaultProfileCacheTTL  = 5 * time.Minute
	defaultGoogleJWKSURI    = "https://www.googleapis.com/oauth2/v3/certs"
)

type Config struct {
	AppPort string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	JWTSecret        string
	JWTIssuer        string
	AccessExpMinutes int
	RefreshExpDays   int

	GoogleClientID string
	GoogleJWKSURI  string

	UsersServiceURL     string
	UsersServiceToken   string
	UsersServiceTimeout time.Duration
	ProfileCacheTTL     time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		AppPort: getEnv("APP_PORT", defaultPort),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTIssuer:        getEnv("JWT_ISSUER", "legendme-login-svc"),
		AccessExpMinutes: defaultAccessExpMins,
		RefreshExpDays:   defaultRefreshExpDays,

		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleJWKSURI:  getEnv("GOOGLE_JWKS_URI", defaultGoogleJWKSURI),

		UsersServiceURL:     os.Getenv("USERS_SVC_URL"),
		UsersServiceToken:   os.Getenv("USERS_SVC_INTERNAL_TOKEN"),
		UsersServiceTimeout: defaultDirectoryTimeout,
		ProfileCacheTTL:     defaultProfileCacheTTL,
	}

	if v := os.Getenv("JWT_ACCESS_EXP_MINUTES"); v != "" {
		mins, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid JWT_ACCESS_EXP_MINUTES: %w", err)
		}
		cfg.AccessExpMinutes = mins
	}

	if v := os.Getenv("JWT_REFRESH_EXP_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid JWT_REFRESH_EXP_DAYS: %w", err)
		}
		cfg.RefreshExpDays = days
	}

	if v := os.Getenv("USERS_SVC_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid USERS_SVC_TIMEOUT: %w", err)
		}
		cfg.UsersServiceTimeout = d
	}

	if v := os.Getenv("PROFILE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROFILE_CACHE_TTL: %w", err)
		}
		cfg.ProfileCacheTTL = d
	}

	if cfg.DatabaseDSN == "" {
		return Config{}, fmt.Errorf("DATABASE_DSN must be set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.GoogleClientID == "" {
		return Config{}, fmt.Errorf("GOOGLE_CLIENT_ID must be set")
	}
	if cfg.UsersServiceURL == "" {
		return Config{}, fmt.Errorf("USERS_SVC_URL must be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
