// Package presenter turns a weather report into the single line nimbus prints.
package presenter

import (
	"fmt"
	"strconv"

	"github.com/UnknownOlympus/nimbus/internal/models"
)

// QuoteMarker prefixes every report line.
const QuoteMarker = ">>> "

// thresholds are inclusive: hot at or above, cold at or below.
type thresholds struct {
	hot  float64
	cold float64
}

var unitThresholds = map[models.Units]thresholds{
	models.Imperial: {hot: 90, cold: 50},
	models.Metric:   {hot: 32, cold: 10},
}

// Presenter formats reports through a Styler.
type Presenter struct {
	styler Styler
}

func New(styler Styler) *Presenter {
	if styler == nil {
		styler = PlainStyler{}
	}

	return &Presenter{styler: styler}
}

// Format renders `>>> [<city>]: <description>, <temp><unit>`.
// No conversion happens here; the API already answered in the requested units.
func (p *Presenter) Format(report models.WeatherReport, imperial bool) string {
	units := models.UnitsFor(imperial)

	return fmt.Sprintf("%s[%s]: %s, %s",
		QuoteMarker,
		p.styler.Colorize(report.LocationName, ColorBlue),
		p.styler.Colorize(report.Description, ColorMagenta),
		p.styler.Colorize(FormatTemperature(report.Temperature, units), TemperatureColor(report.Temperature, units)),
	)
}

// FormatTemperature prints the shortest exact decimal followed by the unit symbol.
func FormatTemperature(temp float64, units models.Units) string {
	return strconv.FormatFloat(temp, 'f', -1, 64) + units.Symbol()
}

// TemperatureColor picks red for hot, cyan for cold and yellow otherwise.
func TemperatureColor(temp float64, units models.Units) Color {
	limits, ok := unitThresholds[units]
	if !ok {
		limits = unitThresholds[models.Metric]
	}

	switch {
	case temp >= limits.hot:
		return ColorRed
	case temp <= limits.cold:
		return ColorCyan
	default:
		return ColorYellow
	}
}
