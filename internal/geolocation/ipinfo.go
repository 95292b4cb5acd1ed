package geolocation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/nimbus/internal/models"
)

// IPInfoBaseURL is the ipinfo.io lookup endpoint for the caller's own address.
const IPInfoBaseURL = "https://ipinfo.io/json"

// IPInfoProvider implements the Provider interface using ipinfo.io.
type IPInfoProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the ipinfo endpoint
	token   string       // Access token, optional for low volumes
	log     *slog.Logger // Logger for logging operations
}

// ipInfoResponse represents the part of the ipinfo.io response nimbus needs.
type ipInfoResponse struct {
	Loc string `json:"loc"` // "lat,lon"
}

// NewIPInfoProvider creates a new ipinfo.io provider. An empty baseURL selects IPInfoBaseURL.
func NewIPInfoProvider(baseURL, token string, timeout time.Duration, log *slog.Logger) *IPInfoProvider {
	return NewIPInfoProviderWithClient(&http.Client{Timeout: timeout}, baseURL, token, log)
}

// NewIPInfoProviderWithClient allows injecting custom HTTP client.
func NewIPInfoProviderWithClient(client HTTPClient, baseURL, token string, log *slog.Logger) *IPInfoProvider {
	if baseURL == "" {
		baseURL = IPInfoBaseURL
	}

	return &IPInfoProvider{client: client, baseURL: baseURL, token: token, log: log}
}

// Locate asks ipinfo.io for the coordinates of the caller's public address.
func (ii *IPInfoProvider) Locate(ctx context.Context) (*models.Coordinates, error) {
	const locParts = 2

	reqURL, err := url.Parse(ii.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	if ii.token != "" {
		query := reqURL.Query()
		query.Set("token", ii.token)
		reqURL.RawQuery = query.Encode()
	}

	ii.log.DebugContext(ctx, "Locating using ipinfo", "host", reqURL.Host)

	var result ipInfoResponse
	if err = getJSON(ctx, ii.client, reqURL.String(), &result); err != nil {
		ii.log.DebugContext(ctx, "ipinfo lookup failed", "error", err)
		return nil, err
	}

	if result.Loc == "" {
		return nil, ErrEmptyResponse
	}

	parts := strings.Split(result.Loc, ",")
	if len(parts) != locParts {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCoords, result.Loc)
	}

	lat, lon := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if _, err = strconv.ParseFloat(lat, 64); err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrInvalidCoords, lat)
	}
	if _, err = strconv.ParseFloat(lon, 64); err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrInvalidCoords, lon)
	}

	ii.log.DebugContext(ctx, "ipinfo found location", "lat", lat, "lon", lon)

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
