package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.UseKafka)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", DriverMemory)
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("USE_KAFKA", "true")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.UseKafka)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoadConfig_SessionSecretRequired(t *testing.T) {
	t.Run("sin definir", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		require.NoError(t, os.Unsetenv("SESSION_SECRET"))

		_, err := LoadConfig()
		assert.ErrorIs(t, err, ErrMissingSessionSecret)
	})

	t.Run("vacío", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "  ")

		_, err := LoadConfig()
		assert.ErrorIs(t, err, ErrMissingSessionSecret)
	})
}
