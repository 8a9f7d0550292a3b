package weather

import (
	"time"
)

// DateLayout is the ISO calendar date used to key daily summaries.
const DateLayout = "2006-01-02"

// ForecastSample is one raw measurement from a provider's time series.
type ForecastSample struct {
	Timestamp    time.Time `json:"timestamp"` // always UTC
	TemperatureC float64   `json:"temperatureC"`
	Description  string    `json:"description"`
	IconCode     string    `json:"icon"`
}

// DailySummary collapses all samples of one UTC calendar day.
type DailySummary struct {
	Date            string  `json:"date"`
	MinTemperatureC float64 `json:"minTemperatureC"`
	MaxTemperatureC float64 `json:"maxTemperatureC"`
	Description     string  `json:"description"`
	IconCode        string  `json:"icon"`
}

// RawForecast is what a provider returns for a single request.
// Location is the name echoed back by the provider and may be empty.
type RawForecast struct {
	Provider string
	Location string
	Samples  []ForecastSample
}

// TripForecast is the aggregated, ready-to-present result for a destination.
type TripForecast struct {
	Provider string         `json:"provider"`
	Location string         `json:"location"`
	Days     []DailySummary `json:"days"`
}
