package models

// Coordinates represents a geographical point as reported by a geolocation provider.
// Values are kept as decimal strings so they reach the weather query unmodified.
type Coordinates struct {
	Latitude  string // Latitude of the geographical point.
	Longitude string // Longitude of the geographical point.
}
