package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("CEP_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StorageFile, cfg.Storage.Driver)
	assert.Equal(t, ".", cfg.Storage.DocumentsDir)
	assert.Equal(t, "https://www.banxico.org.mx/cep", cfg.CEP.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.CEP.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Redis.DocumentTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("CEP_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_MAX", "20")
	t.Setenv("REDIS_DOCUMENT_TTL", "24h")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, 5*time.Second, cfg.CEP.Timeout)
	assert.Equal(t, 20, cfg.RateLimitMax)
	assert.Equal(t, 24*time.Hour, cfg.Redis.DocumentTTL)
}

func TestTypedGetters_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 7, GetIntEnv("X_INT", 7))
	assert.Equal(t, time.Second, GetDurationEnv("X_DUR", time.Second))
}
