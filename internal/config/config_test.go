package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle/apps/wordle/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "NODE_ENV", "JWT_EXPIRES_DAYS", "REDIS_ADDR", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	cfg := config.Load()
	assert.Equal(t, ":5175", cfg.Addr())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 14*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Empty(t, cfg.Storage.RedisAddr)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("JWT_EXPIRES_DAYS", "2")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("GAME_TTL_HOURS", "1")

	cfg := config.Load()
	assert.Equal(t, ":9000", cfg.Addr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 48*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 0, cfg.Storage.RedisDB)
	assert.Equal(t, time.Hour, cfg.Storage.GameTTL)
}
