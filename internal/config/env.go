package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	// Remote booking API (owns all persistence).
	UpstreamBaseURL string
	UpstreamTimeout time.Duration

	// Draft storage: "memory" or "redis".
	DraftStore    string
	DraftTTL      time.Duration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	JWTSecret         string
	AdminPasswordHash string

	CORSOrigins []string
}

func LoadEnv() Env {
	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:8000/api"),
		UpstreamTimeout: getEnvAsDuration("UPSTREAM_TIMEOUT", "15s"),

		DraftStore:    getEnv("DRAFT_STORE", "memory"),
		DraftTTL:      getEnvAsDuration("DRAFT_TTL", "30m"),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		JWTSecret:         getEnv("JWT_SECRET", "super-secret-key-change-me"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		CORSOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key, fallback string) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	d, _ := time.ParseDuration(fallback)
	return d
}

func getEnvAsList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
