package geolocation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/UnknownOlympus/nimbus/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It locates the caller through the
// Geolocation API using only the request's IP address.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geolocate(ctx context.Context, r *maps.GeolocationRequest) (*maps.GeolocationResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Locate returns the coordinates Google associates with the caller's IP address.
func (gp *GoogleProvider) Locate(ctx context.Context) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Locating using Google Maps")

	req := maps.GeolocationRequest{ConsiderIP: true}
	result, err := gp.client.Geolocate(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geolocate: %w", err)
	}

	if result == nil {
		return nil, ErrEmptyResponse
	}

	gp.log.DebugContext(ctx, "Google found location",
		"lat", result.Location.Lat,
		"lon", result.Location.Lng,
		"accuracy_m", result.Accuracy)

	return &models.Coordinates{
		Latitude:  strconv.FormatFloat(result.Location.Lat, 'f', -1, 64),
		Longitude: strconv.FormatFloat(result.Location.Lng, 'f', -1, 64),
	}, nil
}
