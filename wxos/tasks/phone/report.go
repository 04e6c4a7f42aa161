package phone

import (
	"fmt"
	"math"

	"wristwx/wxos/proto"
)

// Icon ids understood by the watch.
const (
	IconSun uint8 = iota
	IconCloud
	IconRain
	IconSnow
)

// Report is one weather update for the watch.
type Report struct {
	Icon        uint8
	Temperature string
	City        string
}

// Tuples returns the dictionary sent for r.
func (r Report) Tuples() []proto.Tuple {
	return []proto.Tuple{
		proto.IntTuple(proto.WeatherIconKey, int32(r.Icon)),
		proto.CStringTuple(proto.WeatherTemperatureKey, r.Temperature),
		proto.CStringTuple(proto.WeatherCityKey, r.City),
	}
}

// unavailableTuples is what the watch gets when no weather could be fetched.
// The icon is left as it was.
func unavailableTuples() []proto.Tuple {
	return []proto.Tuple{
		proto.CStringTuple(proto.WeatherCityKey, "Loc Unavailable"),
		proto.CStringTuple(proto.WeatherTemperatureKey, "N/A"),
	}
}

// IconFromWeatherID maps an OpenWeatherMap condition id to an icon.
func IconFromWeatherID(id int) uint8 {
	switch {
	case id < 600:
		return IconRain
	case id < 700:
		return IconSnow
	case id > 800:
		return IconCloud
	default:
		return IconSun
	}
}

// FormatTemperature renders a Kelvin temperature in whole degrees Celsius.
func FormatTemperature(kelvin float64) string {
	return fmt.Sprintf("%d°C", int(math.Round(kelvin-273.15)))
}
