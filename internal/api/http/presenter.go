package httpapi

import (
	"strings"
	"time"

	"github.com/i474232898/garage-planner/internal/weather"
)

// dayCard is one rendered day of a trip forecast.
type dayCard struct {
	Date            string  `json:"date"`
	Weekday         string  `json:"weekday"`
	MinTemperatureC float64 `json:"minTemperatureC"`
	MaxTemperatureC float64 `json:"maxTemperatureC"`
	Description     string  `json:"description"`
	Icon            string  `json:"icon"`
	IconURL         string  `json:"iconUrl,omitempty"`
}

type forecastView struct {
	Location    string    `json:"location"`
	Provider    string    `json:"provider"`
	Days        []dayCard `json:"days"`
	Attribution string    `json:"attribution"`
}

func presentForecast(f weather.TripForecast) forecastView {
	cards := make([]dayCard, 0, len(f.Days))
	for _, d := range f.Days {
		card := dayCard{
			Date:            d.Date,
			MinTemperatureC: d.MinTemperatureC,
			MaxTemperatureC: d.MaxTemperatureC,
			Description:     d.Description,
			Icon:            d.IconCode,
			IconURL:         iconURL(d.IconCode),
		}
		if t, err := time.Parse(weather.DateLayout, d.Date); err == nil {
			card.Weekday = t.Weekday().String()
		}
		cards = append(cards, card)
	}

	return forecastView{
		Location:    f.Location,
		Provider:    f.Provider,
		Days:        cards,
		Attribution: attribution(f.Provider),
	}
}

// iconURL turns an OpenWeatherMap icon code into its image URL; WeatherAPI
// already sends a scheme-relative URL.
func iconURL(icon string) string {
	switch {
	case icon == "":
		return ""
	case strings.HasPrefix(icon, "//"):
		return "https:" + icon
	case strings.HasPrefix(icon, "http://"), strings.HasPrefix(icon, "https://"):
		return icon
	default:
		return "https://openweathermap.org/img/wn/" + icon + "@2x.png"
	}
}

func attribution(provider string) string {
	switch provider {
	case "weatherapi":
		return "Data provided by WeatherAPI.com"
	default:
		return "Data provided by OpenWeatherMap"
	}
}
