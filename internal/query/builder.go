// Package query builds OpenWeatherMap current-weather request URLs.
package query

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/UnknownOlympus/nimbus/internal/models"
)

// Builder builds request URLs against one endpoint with one API key.
type Builder struct {
	baseURL string // baseURL is the current-weather endpoint without query.
	apiKey  string // apiKey is sent as the appid parameter.
}

// NewBuilder creates a Builder for the given endpoint and API key.
func NewBuilder(baseURL, apiKey string) *Builder {
	return &Builder{baseURL: baseURL, apiKey: apiKey}
}

// ByCity joins the city words with single spaces and builds a q= query for it.
// The city is not validated; unknown names are reported by the API as 404.
func (b *Builder) ByCity(cityTokens []string, imperial bool) models.QueryURL {
	city := strings.Join(cityTokens, " ")

	return b.build("q="+url.QueryEscape(city), imperial)
}

// ByCoordinates builds a lat=&lon= query. Coordinates are already numeric strings
// and are embedded as given.
func (b *Builder) ByCoordinates(coords models.Coordinates, imperial bool) models.QueryURL {
	return b.build("lat="+coords.Latitude+"&lon="+coords.Longitude, imperial)
}

func (b *Builder) build(location string, imperial bool) models.QueryURL {
	units := models.UnitsFor(imperial)

	return models.QueryURL(fmt.Sprintf(
		"%s?%s&units=%s&appid=%s",
		b.baseURL, location, units, url.QueryEscape(b.apiKey),
	))
}
