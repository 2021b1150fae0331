package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "laundry.db", cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "0 9 * * *", cfg.ReminderCron)
	assert.Positive(t, cfg.JWTAccessTTL)
	assert.Positive(t, cfg.RefreshTTL)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "not-a-duration")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_ProdRejectsDefaultSecret(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REFRESH_TOKEN_PEPPER", "a-real-pepper")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_ProdWithSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("REFRESH_TOKEN_PEPPER", "a-real-pepper")

	_, err := Load()

	assert.NoError(t, err)
}
