package geolocation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/nimbus/internal/models"
)

// IPAPIBaseURL is the ip-api.com lookup endpoint for the caller's own address.
// The free tier is served over plain HTTP only.
const IPAPIBaseURL = "http://ip-api.com/json/"

// IPAPIProvider implements the Provider interface using ip-api.com.
type IPAPIProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the ip-api endpoint
	log     *slog.Logger // Logger for logging operations
}

// ipAPIResponse represents the JSON response from ip-api.com.
type ipAPIResponse struct {
	Status  string   `json:"status"`  // "success" or "fail"
	Message string   `json:"message"` // failure reason, e.g. "reserved range"
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// NewIPAPIProvider creates a new ip-api.com provider. An empty baseURL selects IPAPIBaseURL.
func NewIPAPIProvider(baseURL string, timeout time.Duration, log *slog.Logger) *IPAPIProvider {
	return NewIPAPIProviderWithClient(&http.Client{Timeout: timeout}, baseURL, log)
}

// NewIPAPIProviderWithClient creates an ip-api.com provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewIPAPIProviderWithClient(client HTTPClient, baseURL string, log *slog.Logger) *IPAPIProvider {
	if baseURL == "" {
		baseURL = IPAPIBaseURL
	}

	return &IPAPIProvider{client: client, baseURL: baseURL, log: log}
}

// Locate asks ip-api.com for the coordinates of the caller's public address.
func (ip *IPAPIProvider) Locate(ctx context.Context) (*models.Coordinates, error) {
	reqURL, err := url.Parse(ip.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("fields", "status,message,lat,lon")
	reqURL.RawQuery = query.Encode()

	ip.log.DebugContext(ctx, "Locating using ip-api", "url", reqURL.String())

	var result ipAPIResponse
	if err = getJSON(ctx, ip.client, reqURL.String(), &result); err != nil {
		ip.log.DebugContext(ctx, "ip-api lookup failed", "error", err)
		return nil, err
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("%w: ip-api status %q: %s", ErrProviderFailed, result.Status, result.Message)
	}

	if result.Lat == nil || result.Lon == nil {
		return nil, ErrEmptyResponse
	}

	coords := &models.Coordinates{
		Latitude:  strconv.FormatFloat(*result.Lat, 'f', -1, 64),
		Longitude: strconv.FormatFloat(*result.Lon, 'f', -1, 64),
	}

	ip.log.DebugContext(ctx, "ip-api found location", "lat", coords.Latitude, "lon", coords.Longitude)

	return coords, nil
}
