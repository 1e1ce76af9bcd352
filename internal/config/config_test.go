package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 50.0, cfg.Payment.Fee)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, 15*time.Minute, cfg.CodeTTL())
	assert.Equal(t, 8*time.Hour, cfg.SessionTTL())
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown mode", map[string]string{"APP_MODE": "staging"}},
		{"unknown driver", map[string]string{"APP_MODE": "dev", "DB_DRIVER": "oracle"}},
		{"negative fee", map[string]string{"APP_MODE": "dev", "DB_DRIVER": "sqlite", "CERTIFICATE_FEE": "-1"}},
		{"prod without secret", map[string]string{"APP_MODE": "prod", "DB_DRIVER": "mysql", "PROD_JWT_SECRET": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvIntFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))

	t.Setenv("SOME_INT", "0")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))

	t.Setenv("SOME_INT", "12")
	assert.Equal(t, 12, getEnvInt("SOME_INT", 7))
}
