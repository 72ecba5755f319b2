package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")

		cfg, err := Load("testdata/missing.env")
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
		assert.True(t, cfg.DemoLogin)
		assert.Zero(t, cfg.FetchDelay)
		assert.Empty(t, cfg.DBURL)
		assert.Equal(t, 10, cfg.LoginRateRequests)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("PORT", "9090")
		t.Setenv("SESSION_TTL", "30m")
		t.Setenv("FETCH_DELAY", "1500ms")
		t.Setenv("DEMO_LOGIN", "false")
		t.Setenv("DB_URL", "postgres://localhost/escola")

		cfg, err := Load("testdata/missing.env")
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
		assert.Equal(t, 1500*time.Millisecond, cfg.FetchDelay)
		assert.False(t, cfg.DemoLogin)
		assert.Equal(t, "postgres://localhost/escola", cfg.DBURL)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := Load("testdata/missing.env")
		assert.Error(t, err)
	})
}
