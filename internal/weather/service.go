package weather

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/i474232898/garage-planner/internal/common"
)

// Service orchestrates a single forecast fetch and its daily aggregation.
type Service struct {
	fetcher ForecastFetcher
}

// NewService creates a new Service.
func NewService(fetcher ForecastFetcher) *Service {
	return &Service{
		fetcher: fetcher,
	}
}

// Provider returns the name of the configured forecast source.
func (s *Service) Provider() string {
	if s.fetcher == nil {
		return ""
	}
	return s.fetcher.Name()
}

// Forecast fetches the forecast for location and collapses it into daily summaries.
// The caller gets either a complete TripForecast or one error.
func (s *Service) Forecast(ctx context.Context, location string) (TripForecast, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return TripForecast{}, common.NewValidationError("city", "destination must not be empty")
	}
	if s.fetcher == nil {
		log.Printf("ERROR: no forecast provider available for %q", location)
		return TripForecast{}, fmt.Errorf("%w: no provider", ErrConfiguration)
	}

	log.Printf("DEBUG: Forecast called for %q via %s", location, s.fetcher.Name())

	raw, err := s.fetcher.FetchForecast(ctx, location)
	if err != nil {
		log.Printf("provider %s forecast failed for %q: %v", s.fetcher.Name(), location, err)
		return TripForecast{}, err
	}

	days := AggregateDaily(raw.Samples)
	if len(days) == 0 {
		log.Printf("forecast aggregation produced no entries for %q", location)
		return TripForecast{}, fmt.Errorf("%w: no samples in payload", ErrDataShape)
	}

	resolved := raw.Location
	if resolved == "" {
		resolved = location
	}
	provider := raw.Provider
	if provider == "" {
		provider = s.fetcher.Name()
	}

	return TripForecast{
		Provider: provider,
		Location: resolved,
		Days:     days,
	}, nil
}
