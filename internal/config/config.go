package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Forecast providers selectable with FORECAST_PROVIDER.
const (
	ProviderOpenWeather = "openweathermap"
	ProviderWeatherAPI  = "weatherapi"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string

	ForecastProvider string
	ForecastLang     string
	ForecastDays     int // weatherapi only

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	StorageBackend string
	SQLitePath     string
	RedisURL       string
	GarageSlot     string

	VehicleDetailsPath string

	// Review sweep over the garage (0 interval disables it).
	ReviewSweepInterval time.Duration
	ReviewWindow        time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")

	cfg.ForecastProvider = strings.ToLower(getenvDefault("FORECAST_PROVIDER", ProviderOpenWeather))
	switch cfg.ForecastProvider {
	case ProviderOpenWeather, ProviderWeatherAPI:
	default:
		return nil, fmt.Errorf("invalid FORECAST_PROVIDER %q", cfg.ForecastProvider)
	}
	cfg.ForecastLang = getenvDefault("FORECAST_LANG", "pt_br")
	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 5)

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	cfg.StorageBackend = strings.ToLower(getenvDefault("STORAGE_BACKEND", BackendSQLite))
	switch cfg.StorageBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	cfg.SQLitePath = getenvDefault("SQLITE_PATH", "garage.db")
	cfg.RedisURL = getenvDefault("REDIS_URL", "redis://localhost:6379/0")
	cfg.GarageSlot = getenvDefault("GARAGE_SLOT", "garage")

	cfg.VehicleDetailsPath = getenvDefault("VEHICLE_DETAILS_PATH", "data/vehicle_details.json")

	if cfg.ReviewSweepInterval, err = getenvDuration("REVIEW_SWEEP_INTERVAL", "24h"); err != nil {
		return nil, err
	}
	if cfg.ReviewWindow, err = getenvDuration("REVIEW_WINDOW", "720h"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// ForecastKey returns the API key of the selected forecast provider and the
// environment variable it is read from.
func (c *AppConfig) ForecastKey() (key, envVar string) {
	if c.ForecastProvider == ProviderWeatherAPI {
		return c.WeatherAPIKey, "WEATHERAPI_API_KEY"
	}
	return c.OpenWeatherAPIKey, "OPENWEATHER_API_KEY"
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
