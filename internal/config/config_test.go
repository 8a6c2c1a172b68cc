package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"JWT_SECRET", "JWT_EXPIRY", "PORT", "CORS_ORIGINS", "APP_ENV",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.Empty(t, cfg.JWTSecret)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("JWT_EXPIRY", "24h")
	t.Setenv("APP_ENV", "production")

	cfg := Load()
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.False(t, cfg.IsDevelopment())
}

func TestParseDurationFallback(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "pw",
		DBName:     "userhub",
		DBSSLMode:  "require",
	}
	assert.Equal(t,
		"host=db user=app password=pw dbname=userhub port=5433 sslmode=require TimeZone=UTC",
		cfg.DSN())
}
