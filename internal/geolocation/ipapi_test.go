package geolocation_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/UnknownOlympus/nimbus/internal/geolocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respondWith(status int, body string) *mockHTTPClient {
	return &mockHTTPClient{
		doFunc: func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewBufferString(body)),
			}, nil
		},
	}
}

func TestIPAPIProvider_Locate(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("successful lookup", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), "ip-api.com/json/")
				assert.Equal(t, "status,message,lat,lon", req.URL.Query().Get("fields"))
				assert.Equal(t, "application/json", req.Header.Get("Accept"))

				responseBody := `{"status":"success","lat":40.71,"lon":-74}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geolocation.NewIPAPIProviderWithClient(mockClient, "", logger)
		coords, err := provider.Locate(ctx)

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.Equal(t, "40.71", coords.Latitude)
		assert.Equal(t, "-74", coords.Longitude)
	})

	t.Run("provider reports failure", func(t *testing.T) {
		provider := geolocation.NewIPAPIProviderWithClient(
			respondWith(http.StatusOK, `{"status":"fail","message":"reserved range"}`), "", logger)

		coords, err := provider.Locate(ctx)

		require.ErrorIs(t, err, geolocation.ErrProviderFailed)
		require.Nil(t, coords)
		assert.Contains(t, err.Error(), "reserved range")
	})

	t.Run("coordinates missing", func(t *testing.T) {
		provider := geolocation.NewIPAPIProviderWithClient(
			respondWith(http.StatusOK, `{"status":"success"}`), "", logger)

		coords, err := provider.Locate(ctx)

		require.ErrorIs(t, err, geolocation.ErrEmptyResponse)
		require.Nil(t, coords)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		provider := geolocation.NewIPAPIProviderWithClient(
			respondWith(http.StatusTooManyRequests, `rate limited`), "", logger)

		coords, err := provider.Locate(ctx)

		require.Error(t, err)
		require.Nil(t, coords)
		assert.Contains(t, err.Error(), "geolocation API returned status 429")
	})

	t.Run("forbidden", func(t *testing.T) {
		provider := geolocation.NewIPAPIProviderWithClient(
			respondWith(http.StatusForbidden, `denied`), "", logger)

		_, err := provider.Locate(ctx)

		require.ErrorIs(t, err, geolocation.ErrUnauthorized)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		provider := geolocation.NewIPAPIProviderWithClient(
			respondWith(http.StatusOK, `invalid json`), "", logger)

		coords, err := provider.Locate(ctx)

		require.Error(t, err)
		require.Nil(t, coords)
		assert.Contains(t, err.Error(), "failed to decode geolocation response")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := geolocation.NewIPAPIProviderWithClient(mockClient, "", logger)
		coords, err := provider.Locate(ctx)

		require.ErrorIs(t, err, assert.AnError)
		require.Nil(t, coords)
		assert.Contains(t, err.Error(), "failed to execute geolocation request")
	})

	t.Run("custom base URL", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "geo.internal", req.URL.Host)
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"status":"success","lat":1.5,"lon":2.25}`)),
				}, nil
			},
		}

		provider := geolocation.NewIPAPIProviderWithClient(mockClient, "http://geo.internal/json", logger)
		coords, err := provider.Locate(ctx)

		require.NoError(t, err)
		assert.Equal(t, "1.5", coords.Latitude)
		assert.Equal(t, "2.25", coords.Longitude)
	})
}

func TestNewIPAPIProvider(t *testing.T) {
	provider := geolocation.NewIPAPIProvider("", time.Second, slog.Default())

	require.NotNil(t, provider)
}
