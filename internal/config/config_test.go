package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func clearAll(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "HTTP_ADDR", "DATABASE_URL", "JWT_SECRET", "JWT_ISSUER",
		"RABBIT_URL", "RABBIT_EXCHANGE", "REDIS_URL", "CACHE_TTL_DETAILS",
		"S3_ENDPOINT", "S3_EXTERNAL_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
		"S3_BUCKET", "CDN_BASE_URL", "PRESIGN_TTL", "REVEAL_POLICY",
		"RL_ENABLED", "RL_IP_LIMIT", "RL_IP_WINDOW",
	} {
		// t.Setenv restores the old value after the test
		if _, ok := os.LookupEnv(k); ok {
			t.Setenv(k, "")
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearAll(t)
	setEnv(t, map[string]string{
		"DATABASE_URL": "postgres://localhost/blackout",
		"JWT_SECRET":   "secret",
	})

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "blackout", cfg.JWTIssuer)
	assert.Equal(t, "blackout.events", cfg.RabbitExchange)
	assert.Equal(t, "blackout-photos", cfg.S3Bucket)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTLDetails)
	assert.Equal(t, 15*time.Minute, cfg.PresignTTL)
	assert.Equal(t, "after_end", cfg.RevealPolicy)
	assert.Equal(t, 10*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPIdleTimeout)
	assert.True(t, cfg.RLEnabled)
}

func TestLoad_RequiredVars(t *testing.T) {
	t.Run("missing_database_url", func(t *testing.T) {
		clearAll(t)
		setEnv(t, map[string]string{"JWT_SECRET": "secret"})

		_, err := Load()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("missing_jwt_secret", func(t *testing.T) {
		clearAll(t)
		setEnv(t, map[string]string{"DATABASE_URL": "postgres://localhost/blackout"})

		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}

func TestLoad_NonDevRequiresFullStack(t *testing.T) {
	base := map[string]string{
		"APP_ENV":      "prod",
		"DATABASE_URL": "postgres://localhost/blackout",
		"JWT_SECRET":   "secret",
	}

	t.Run("rabbit_required", func(t *testing.T) {
		clearAll(t)
		setEnv(t, base)

		_, err := Load()
		assert.ErrorContains(t, err, "RABBIT_URL")
	})

	t.Run("s3_required", func(t *testing.T) {
		clearAll(t)
		setEnv(t, base)
		setEnv(t, map[string]string{"RABBIT_URL": "amqp://localhost"})

		_, err := Load()
		assert.ErrorContains(t, err, "S3")
	})

	t.Run("full_stack_ok", func(t *testing.T) {
		clearAll(t)
		setEnv(t, base)
		setEnv(t, map[string]string{
			"RABBIT_URL":           "amqp://localhost",
			"S3_ENDPOINT":          "http://minio:9000",
			"S3_ACCESS_KEY_ID":     "key",
			"S3_SECRET_ACCESS_KEY": "secret",
			"CDN_BASE_URL":         "https://cdn.blackout.app",
		})

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "prod", cfg.AppEnv)
	})
}

func TestLoad_RevealPolicy(t *testing.T) {
	clearAll(t)
	setEnv(t, map[string]string{
		"DATABASE_URL":  "postgres://localhost/blackout",
		"JWT_SECRET":    "secret",
		"REVEAL_POLICY": "sometimes",
	})

	_, err := Load()
	assert.ErrorContains(t, err, "REVEAL_POLICY")
}

func TestLoad_DurationFallback(t *testing.T) {
	clearAll(t)
	setEnv(t, map[string]string{
		"DATABASE_URL":      "postgres://localhost/blackout",
		"JWT_SECRET":        "secret",
		"CACHE_TTL_DETAILS": "not-a-duration",
	})

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTLDetails)
}
