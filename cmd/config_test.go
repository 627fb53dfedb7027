package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fleetdelivery/internal/core/domain/model/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should fall back to defaults", func(t *testing.T) {
		cfg, err := LoadConfig("", "")
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.HTTP.Port)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.False(t, cfg.Redis.Enabled)
		assert.False(t, cfg.Queue.Enabled)
		assert.Equal(t, 3, cfg.Orders.CreateAttempts)
		assert.InDelta(t, geo.DefaultEarthRadiusKm, cfg.Geo.EarthRadiusKm, 1e-9)
		assert.True(t, cfg.Jobs.Enabled)
	})

	t.Run("should let the environment override defaults", func(t *testing.T) {
		t.Setenv("FLEET_HTTP_PORT", "9090")
		t.Setenv("FLEET_REDIS_ENABLED", "true")
		t.Setenv("FLEET_LOCK_WAIT_TIMEOUT", "2s")

		cfg, err := LoadConfig("", "")
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTP.Port)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, 2*time.Second, cfg.Lock.WaitTimeout)
	})

	t.Run("should read a YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
db:
  host: db.internal
  name: fleet
geo:
  default_speed_kmh: 25
jobs:
  enabled: false
`), 0o600))

		cfg, err := LoadConfig(path, "")
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.DB.Host)
		assert.Equal(t, "fleet", cfg.DB.Name)
		assert.InDelta(t, 25.0, cfg.Geo.Params().DefaultSpeedKmh, 1e-9)
		assert.False(t, cfg.Jobs.Enabled)
	})

	t.Run("should load a dotenv file", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("FLEET_DB_NAME=from_dotenv\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("FLEET_DB_NAME") })

		cfg, err := LoadConfig("", envFile)
		require.NoError(t, err)
		assert.Equal(t, "from_dotenv", cfg.DB.Name)
	})

	t.Run("should ignore a missing dotenv file", func(t *testing.T) {
		_, err := LoadConfig("", filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
	})

	t.Run("should fail on a missing config file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("should report every missing setting", func(t *testing.T) {
		cfg := Config{Redis: RedisConfig{Enabled: true}}

		err := cfg.Validate()
		require.Error(t, err)
		for _, want := range []string{"http.port", "db.host", "db.name", "redis.addr", "lock.wait_timeout"} {
			assert.Contains(t, err.Error(), want)
		}
		assert.NotContains(t, err.Error(), "queue.addr")
	})

	t.Run("should render the postgres DSN", func(t *testing.T) {
		dsn := DBConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SslMode: "disable"}.DSN()
		assert.Equal(t, "host=h port=5432 user=u password=p dbname=n sslmode=disable", dsn)
	})
}
