package weather

import (
	"context"
)

// ForecastFetcher abstracts a multi-day forecast source (OpenWeatherMap, WeatherAPI).
// Implementations issue exactly one outbound request per call.
type ForecastFetcher interface {
	Name() string
	FetchForecast(ctx context.Context, location string) (RawForecast, error)
}
