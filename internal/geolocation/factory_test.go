package geolocation_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/nimbus/internal/geolocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("create ip-api provider successfully", func(t *testing.T) {
		config := geolocation.ProviderConfig{
			Type:    geolocation.ProviderTypeIPAPI,
			Timeout: time.Second,
			Logger:  logger,
		}

		provider, err := geolocation.NewProvider(config)

		require.NoError(t, err)
		require.NotNil(t, provider)
		_, ok := provider.(*geolocation.IPAPIProvider)
		assert.True(t, ok, "expected provider to be *IPAPIProvider")
	})

	t.Run("create ipinfo provider without token", func(t *testing.T) {
		config := geolocation.ProviderConfig{
			Type:   geolocation.ProviderTypeIPInfo,
			Logger: logger,
		}

		provider, err := geolocation.NewProvider(config)

		require.NoError(t, err)
		_, ok := provider.(*geolocation.IPInfoProvider)
		assert.True(t, ok, "expected provider to be *IPInfoProvider")
	})

	t.Run("create Google provider successfully", func(t *testing.T) {
		config := geolocation.ProviderConfig{
			Type:    geolocation.ProviderTypeGoogle,
			APIKey:  "test-api-key",
			Timeout: time.Second,
			Logger:  logger,
		}

		provider, err := geolocation.NewProvider(config)

		require.NoError(t, err)
		_, ok := provider.(*geolocation.GoogleProvider)
		assert.True(t, ok, "expected provider to be *GoogleProvider")
	})

	t.Run("create Google provider with base URL", func(t *testing.T) {
		config := geolocation.ProviderConfig{
			Type:   geolocation.ProviderTypeGoogle,
			APIKey: "test-api-key",
			URL:    "http://localhost:9999",
			Logger: logger,
		}

		provider, err := geolocation.NewProvider(config)

		require.NoError(t, err)
		require.NotNil(t, provider)
	})

	t.Run("create Google provider without API key fails", func(t *testing.T) {
		config := geolocation.ProviderConfig{
			Type:   geolocation.ProviderTypeGoogle,
			Logger: logger,
		}

		provider, err := geolocation.NewProvider(config)

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "API key is required for Google provider")
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		config := geolocation.ProviderConfig{
			Type:   geolocation.ProviderType("unsupported"),
			Logger: logger,
		}

		provider, err := geolocation.NewProvider(config)

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "unsupported provider type: unsupported")
	})
}

func TestProviderType_Constants(t *testing.T) {
	assert.Equal(t, "ipapi", string(geolocation.ProviderTypeIPAPI))
	assert.Equal(t, "ipinfo", string(geolocation.ProviderTypeIPInfo))
	assert.Equal(t, "google", string(geolocation.ProviderTypeGoogle))
}
