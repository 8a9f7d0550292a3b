package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	httpapi "github.com/i474232898/garage-planner/internal/api/http"
	"github.com/i474232898/garage-planner/internal/config"
	"github.com/i474232898/garage-planner/internal/garage"
	"github.com/i474232898/garage-planner/internal/scheduler"
	"github.com/i474232898/garage-planner/internal/store"
	"github.com/i474232898/garage-planner/internal/vehicleinfo"
	"github.com/i474232898/garage-planner/internal/weather"
	"github.com/i474232898/garage-planner/internal/weather/providers"
)

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	kv, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StorageBackend, err)
	}
	defer kv.Close()

	// Garage state lives for the whole process; read once at startup.
	g := garage.New(garage.NewSlotRepository(kv, cfg.GarageSlot))
	if err := g.Load(context.Background()); err != nil {
		log.Fatalf("failed to load garage: %v", err)
	}

	key, keyVar := cfg.ForecastKey()
	var fetcher weather.ForecastFetcher
	switch cfg.ForecastProvider {
	case config.ProviderWeatherAPI:
		fetcher = providers.NewWeatherAPIProvider(httpClient, key, cfg.ForecastLang, cfg.ForecastDays)
	default:
		fetcher = providers.NewOpenWeatherProvider(httpClient, key, cfg.ForecastLang)
	}
	if providers.IsPlaceholderKey(key) {
		log.Printf("INFO: %s is not set; %s forecast requests will fail until it is", keyVar, fetcher.Name())
	}

	forecasts := weather.NewService(fetcher)
	details := vehicleinfo.NewFileLookup(cfg.VehicleDetailsPath)

	// Scheduler that periodically reviews recalls and upcoming maintenance.
	sched := scheduler.New(g, details, cfg.ReviewSweepInterval, cfg.ReviewWindow)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp("garage-planner")

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "garage-planner",
			"vehicles": len(g.List()),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Garage:    g,
		Details:   details,
		Forecasts: forecasts,
		Reviews:   sched,
	})

	go func() {
		log.Printf("INFO: listening on :%s (forecasts via %s, storage %s)", cfg.Port, fetcher.Name(), cfg.StorageBackend)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func openStore(cfg *config.AppConfig) (store.KV, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return store.NewRedis(ctx, cfg.RedisURL, "garage-planner:")
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	default:
		return store.NewSQLite(cfg.SQLitePath)
	}
}
