package geolocation

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geolocation provider.
type ProviderType string

const (
	// ProviderTypeIPAPI represents the ip-api.com provider.
	ProviderTypeIPAPI ProviderType = "ipapi"
	// ProviderTypeIPInfo represents the ipinfo.io provider.
	ProviderTypeIPInfo ProviderType = "ipinfo"
	// ProviderTypeGoogle represents the Google Maps Geolocation API.
	ProviderTypeGoogle ProviderType = "google"
)

// ProviderConfig holds configuration for creating a geolocation provider.
type ProviderConfig struct {
	Type    ProviderType  // Type of provider to create
	APIKey  string        // API key (token for ipinfo, required for google)
	URL     string        // Endpoint override, provider default when empty
	Timeout time.Duration // Timeout for the single lookup request
	Logger  *slog.Logger  // Logger for the provider
}

// NewProvider creates a geolocation provider based on the provided configuration.
//
// Supported provider types:
// - "ipapi": ip-api.com (free, no API key)
// - "ipinfo": ipinfo.io (token optional)
// - "google": Google Maps Geolocation API (requires API key)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeIPAPI:
		return NewIPAPIProvider(config.URL, config.Timeout, config.Logger), nil
	case ProviderTypeIPInfo:
		return NewIPInfoProvider(config.URL, config.APIKey, config.Timeout, config.Logger), nil
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Maps geolocation provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: config.Timeout}),
	}

	if config.URL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(config.URL))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
