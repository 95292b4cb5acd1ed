package models

// QueryURL is a fully qualified weather API request URL.
type QueryURL string

func (q QueryURL) String() string {
	return string(q)
}

// WeatherReport holds the fields of the current-weather payload that get displayed.
type WeatherReport struct {
	LocationName string  // LocationName is the place name as the API resolved it.
	Description  string  // Description is the first weather condition, e.g. "clear sky".
	Temperature  float64 // Temperature in the requested unit system.
}
