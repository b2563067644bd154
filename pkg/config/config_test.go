package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PRICE_CHECK_ENDPOINT", "DEFAULT_USER_AGENT", "PORT", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "price-tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/check-price/", cfg.Endpoint)
	assert.Equal(t, "Mozilla/5.0", cfg.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
endpoint: https://prices.example.com/check-price/
user_agent: price-tracker/1.0
request_timeout: 3s
listen: 127.0.0.1:9000
path_prefix: /tracker
logging:
  level: debug
  file: /tmp/price-tracker.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://prices.example.com/check-price/", cfg.Endpoint)
	assert.Equal(t, "price-tracker/1.0", cfg.UserAgent)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, "/tracker", cfg.PathPrefix)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/price-tracker.log", cfg.Logging.File)
}

func TestLoadFileKeepsUnsetDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "listen: :9999\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Listen)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "endpoint: [unclosed\n"))
		assert.Error(t, err)
	})

	t.Run("relative endpoint", func(t *testing.T) {
		_, err := Load(writeConfig(t, "endpoint: /check-price/\n"))
		assert.ErrorContains(t, err, "absolute URL")
	})

	t.Run("negative timeout", func(t *testing.T) {
		_, err := Load(writeConfig(t, "request_timeout: -1s\n"))
		assert.ErrorContains(t, err, "request_timeout")
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env beats file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PRICE_CHECK_ENDPOINT", "http://backend:5000/check-price/")
		t.Setenv("DEFAULT_USER_AGENT", "curl/8")
		t.Setenv("PORT", "5050")
		t.Setenv("LOG_LEVEL", "warn")

		cfg, err := Load(writeConfig(t, "endpoint: http://file:5000/check-price/\nlisten: :1\n"))
		require.NoError(t, err)

		assert.Equal(t, "http://backend:5000/check-price/", cfg.Endpoint)
		assert.Equal(t, "curl/8", cfg.UserAgent)
		assert.Equal(t, ":5050", cfg.Listen)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("empty env is ignored", func(t *testing.T) {
		clearEnv(t)
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, Default(), cfg)
	})
}
