package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")

	cfg := LoadConfig()

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, "forum", cfg.MongoDB)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, Config{AppEnv: "Development"}.IsDevelopment())
	assert.False(t, Config{AppEnv: "production"}.IsDevelopment())
}
