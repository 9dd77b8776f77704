package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/config"
)

type storeConfig struct {
	Driver string        `env:"STORE_DRIVER" envDefault:"memory"`
	TTL    time.Duration `env:"SNAPSHOT_TTL" envDefault:"24h"`
}

type requiredConfig struct {
	URL string `env:"CONFIG_TEST_REQUIRED_URL,required"`
}

type cachedConfig struct {
	Value string `env:"CONFIG_TEST_CACHED" envDefault:"first"`
}

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Parse[storeConfig](config.WithEnvironment(map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.Driver)
		assert.Equal(t, 24*time.Hour, cfg.TTL)
	})

	t.Run("prefix", func(t *testing.T) {
		cfg, err := config.Parse[storeConfig](
			config.WithPrefix("FORMKIT_"),
			config.WithEnvironment(map[string]string{"FORMKIT_STORE_DRIVER": "redis", "FORMKIT_SNAPSHOT_TTL": "1h"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "redis", cfg.Driver)
		assert.Equal(t, time.Hour, cfg.TTL)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := config.Parse[storeConfig](config.WithEnvironment(map[string]string{"SNAPSHOT_TTL": "soon"}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("required", func(t *testing.T) {
		_, err := config.Parse[requiredConfig](config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("dotenv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("CONFIG_TEST_REQUIRED_URL=redis://localhost\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("CONFIG_TEST_REQUIRED_URL") })

		cfg, err := config.Parse[requiredConfig](config.WithDotenv(path))
		require.NoError(t, err)
		assert.Equal(t, "redis://localhost", cfg.URL)
	})

	t.Run("missing dotenv", func(t *testing.T) {
		_, err := config.Parse[storeConfig](config.WithDotenv(filepath.Join(t.TempDir(), "missing.env")))
		assert.ErrorIs(t, err, config.ErrDotenv)
	})
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("CONFIG_TEST_CACHED", "first")
	first, err := config.Load[cachedConfig]()
	require.NoError(t, err)
	assert.Equal(t, "first", first.Value)

	t.Setenv("CONFIG_TEST_CACHED", "second")
	again := config.MustLoad[cachedConfig]()
	assert.Equal(t, "first", again.Value, "later calls return the cached value")
}
