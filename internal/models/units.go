package models

// Units is the unit system sent to the weather API and used for display.
type Units string

const (
	// Metric reports temperature in Celsius.
	Metric Units = "metric"
	// Imperial reports temperature in Fahrenheit.
	Imperial Units = "imperial"
)

// UnitsFor maps the imperial flag to a unit system.
func UnitsFor(imperial bool) Units {
	if imperial {
		return Imperial
	}
	return Metric
}

func (u Units) String() string {
	return string(u)
}

// Symbol returns the temperature suffix for the unit system.
func (u Units) Symbol() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}
