package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/nimbus/internal/apperr"
	"github.com/UnknownOlympus/nimbus/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSecrets = `[openweather]
api_key = testAPIKey

[geolocation]
api_key = geoToken
`

func writeSecrets(t *testing.T, content string) string {
	t.Helper()
	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "secrets.ini")
	filet.File(t, path, content)

	return path
}

func TestLoadAPIKey(t *testing.T) {
	defer filet.CleanUp(t)

	t.Run("key present", func(t *testing.T) {
		path := writeSecrets(t, validSecrets)

		key, err := config.LoadAPIKey(path)

		require.NoError(t, err)
		assert.Equal(t, "testAPIKey", key)
	})

	t.Run("file is absent", func(t *testing.T) {
		key, err := config.LoadAPIKey(filepath.Join(filet.TmpDir(t, ""), "missing.ini"))

		require.Error(t, err)
		require.ErrorIs(t, err, apperr.ErrConfiguration)
		assert.Empty(t, key)
		assert.Contains(t, apperr.UserMessage(err), "Couldn't read secrets file")
	})

	t.Run("section without key", func(t *testing.T) {
		path := writeSecrets(t, "[openweather]\nother = value\n")

		key, err := config.LoadAPIKey(path)

		require.ErrorIs(t, err, apperr.ErrConfiguration)
		require.ErrorIs(t, err, config.ErrMissingAPIKey)
		assert.Empty(t, key)
	})

	t.Run("key in the wrong section", func(t *testing.T) {
		path := writeSecrets(t, "[weather]\napi_key = misplaced\n")

		_, err := config.LoadAPIKey(path)

		require.ErrorIs(t, err, config.ErrMissingAPIKey)
	})
}

func TestLoad(t *testing.T) {
	defer filet.CleanUp(t)

	t.Run("defaults", func(t *testing.T) {
		path := writeSecrets(t, validSecrets)

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Env)
		assert.Equal(t, path, cfg.SecretsFile)
		assert.Equal(t, "testAPIKey", cfg.APIKey)
		assert.Equal(t, config.DefaultWeatherURL, cfg.WeatherURL)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, "ipapi", cfg.Geolocation.ProviderType)
		assert.Equal(t, "geoToken", cfg.Geolocation.APIKey)
		assert.Empty(t, cfg.Geolocation.URL)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("NIMBUS_ENV", "local")
		t.Setenv("NIMBUS_WEATHER_URL", "http://localhost:9999/weather")
		t.Setenv("NIMBUS_TIMEOUT", "2s")
		t.Setenv("NIMBUS_GEO_PROVIDER", "ipinfo")
		t.Setenv("NIMBUS_GEO_URL", "http://localhost:9999/json")
		path := writeSecrets(t, validSecrets)

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, "http://localhost:9999/weather", cfg.WeatherURL)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
		assert.Equal(t, "ipinfo", cfg.Geolocation.ProviderType)
		assert.Equal(t, "http://localhost:9999/json", cfg.Geolocation.URL)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Setenv("NIMBUS_TIMEOUT", "error_value")
		path := writeSecrets(t, validSecrets)

		cfg, err := config.Load(path)

		require.ErrorIs(t, err, apperr.ErrConfiguration)
		assert.Nil(t, cfg)
		assert.Equal(t, "Invalid NIMBUS_TIMEOUT value.", apperr.UserMessage(err))
	})

	t.Run("missing key", func(t *testing.T) {
		path := writeSecrets(t, "[geolocation]\napi_key = geoToken\n")

		cfg, err := config.Load(path)

		require.ErrorIs(t, err, config.ErrMissingAPIKey)
		assert.Nil(t, cfg)
	})
}
