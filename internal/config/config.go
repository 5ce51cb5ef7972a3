package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTIssuer string

	// RabbitMQ
	RabbitURL      string
	RabbitExchange string

	// Redis & Caching
	RedisURL        string
	CacheTTLDetails time.Duration // community details

	// S3 / MinIO photo bucket
	S3Endpoint         string
	S3ExternalEndpoint string
	S3Region           string
	S3AccessKeyID      string
	S3SecretAccessKey  string
	S3Bucket           string
	S3UsePathStyle     bool
	CDNBaseURL         string
	PresignTTL         time.Duration

	// Gallery reveal: "after_end" (default) or "during_or_after"
	RevealPolicy string

	// Rate Limiting
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	LogLevel  string
	LogFormat string

	// No write timeout knob: the server leaves WriteTimeout unset so
	// long-lived SSE streams are not severed.
	HTTPReadTimeout time.Duration
	HTTPIdleTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")

	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "blackout")

	cfg.RabbitURL = getEnv("RABBIT_URL", "")
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "blackout.events")

	cfg.RedisURL = getEnv("REDIS_URL", "redis://localhost:6379/0")
	cfg.CacheTTLDetails = getDuration("CACHE_TTL_DETAILS", 5*time.Minute)

	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.S3ExternalEndpoint = getEnv("S3_EXTERNAL_ENDPOINT", "")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3AccessKeyID = getEnv("S3_ACCESS_KEY_ID", "")
	cfg.S3SecretAccessKey = getEnv("S3_SECRET_ACCESS_KEY", "")
	cfg.S3Bucket = getEnv("S3_BUCKET", "blackout-photos")
	cfg.S3UsePathStyle = getEnv("S3_USE_PATH_STYLE", "true") == "true"
	cfg.CDNBaseURL = getEnv("CDN_BASE_URL", "")
	cfg.PresignTTL = getDuration("PRESIGN_TTL", 15*time.Minute)

	cfg.RevealPolicy = getEnv("REVEAL_POLICY", "after_end")

	// Rate Limiting Defaults: 100 reqs / 1 min
	cfg.RLEnabled = getEnv("RL_ENABLED", "true") == "true"
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	// validation
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET")
	}
	if cfg.RevealPolicy != "after_end" && cfg.RevealPolicy != "during_or_after" {
		return nil, fmt.Errorf("invalid REVEAL_POLICY %q", cfg.RevealPolicy)
	}

	// Rabbit and S3 may be absent in dev; anything else needs the full stack.
	if cfg.AppEnv != "dev" {
		if cfg.RabbitURL == "" {
			return nil, fmt.Errorf("missing RABBIT_URL (required when APP_ENV != dev)")
		}
		if cfg.S3Endpoint == "" || cfg.S3AccessKeyID == "" || cfg.S3SecretAccessKey == "" {
			return nil, fmt.Errorf("missing S3 settings (required when APP_ENV != dev)")
		}
		if cfg.CDNBaseURL == "" {
			return nil, fmt.Errorf("missing CDN_BASE_URL (required when APP_ENV != dev)")
		}
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
