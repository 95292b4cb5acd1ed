// Package app wires location resolution, query building, fetching and
// presentation into one nimbus run.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/nimbus/internal/apperr"
	"github.com/UnknownOlympus/nimbus/internal/geolocation"
	"github.com/UnknownOlympus/nimbus/internal/metrics"
	"github.com/UnknownOlympus/nimbus/internal/models"
	"github.com/UnknownOlympus/nimbus/internal/presenter"
	"github.com/UnknownOlympus/nimbus/internal/query"
)

// MsgLocationUnavailable is shown when the caller cannot be geolocated.
const MsgLocationUnavailable = "Couldn't determine your location. Pass a city with --city."

// Fetcher retrieves the weather report behind a query URL.
type Fetcher interface {
	Fetch(ctx context.Context, query models.QueryURL) (*models.WeatherReport, error)
}

// App runs a single weather lookup.
type App struct {
	log       *slog.Logger
	builder   *query.Builder
	locator   geolocation.Provider // locator is only consulted when no city is given, may be nil
	fetcher   Fetcher
	presenter *presenter.Presenter
	metrics   *metrics.Metrics
}

// New creates an App. locator and appMetrics may be nil.
func New(
	log *slog.Logger,
	builder *query.Builder,
	locator geolocation.Provider,
	fetcher Fetcher,
	view *presenter.Presenter,
	appMetrics *metrics.Metrics,
) *App {
	return &App{
		log:       log,
		builder:   builder,
		locator:   locator,
		fetcher:   fetcher,
		presenter: view,
		metrics:   appMetrics,
	}
}

// Run resolves the query for req, fetches the report and returns the formatted line.
func (a *App) Run(ctx context.Context, req models.CliRequest) (string, error) {
	queryURL, err := a.buildQuery(ctx, req)
	if err != nil {
		return "", err
	}

	report, err := a.fetcher.Fetch(ctx, queryURL)
	if err != nil {
		return "", err
	}

	return a.presenter.Format(*report, req.Imperial), nil
}

// buildQuery uses the city when there is one and the caller's coordinates otherwise.
func (a *App) buildQuery(ctx context.Context, req models.CliRequest) (models.QueryURL, error) {
	if req.HasCity() {
		a.log.DebugContext(ctx, "Building query by city", "city", req.City, "units", req.Units())
		return a.builder.ByCity(req.City, req.Imperial), nil
	}

	if a.locator == nil {
		return "", apperr.New(apperr.ErrLocation, MsgLocationUnavailable, nil)
	}

	a.log.DebugContext(ctx, "No city given, locating caller")

	startTime := time.Now()
	coords, err := a.locator.Locate(ctx)
	duration := time.Since(startTime).Seconds()
	a.metrics.Observe(metrics.TargetGeolocation, duration, err)

	if err != nil {
		a.log.DebugContext(ctx, "Failed to locate caller", "error", err)
		return "", apperr.New(apperr.ErrLocation, MsgLocationUnavailable, err)
	}

	a.log.InfoContext(ctx, "Caller located", "lat", coords.Latitude, "lon", coords.Longitude)

	return a.builder.ByCoordinates(*coords, req.Imperial), nil
}
