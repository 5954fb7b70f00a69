package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_NAME", "JWT_ACCESS_EXPIRY", "JWT_REFRESH_EXPIRY", "GROUP_MAX_SIZE", "PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "chaiteam_db", cfg.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, 4, cfg.GroupMaxSize)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GROUP_MAX_SIZE", "6")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("DB_HOST", "db.internal")

	cfg := Load()
	assert.Equal(t, 6, cfg.GroupMaxSize)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, "db.internal", cfg.DBHost)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("GROUP_MAX_SIZE", "zero")
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")

	cfg := Load()
	assert.Equal(t, 4, cfg.GroupMaxSize)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "secret",
		DBName:     "chaiteam_db",
		DBSSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=chaiteam_db port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}
