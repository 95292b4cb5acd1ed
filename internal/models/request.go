package models

// CliRequest is the parsed command line: the city words, if any, and the unit system.
type CliRequest struct {
	City     []string // City holds the words of the city name; empty means "locate me".
	Imperial bool     // Imperial selects Fahrenheit instead of Celsius.
}

// HasCity reports whether the request names a city.
func (r CliRequest) HasCity() bool {
	return len(r.City) > 0
}

// Units returns the unit system requested.
func (r CliRequest) Units() Units {
	return UnitsFor(r.Imperial)
}
