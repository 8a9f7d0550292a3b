package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/garage-planner/internal/common"
	"github.com/i474232898/garage-planner/internal/garage"
	"github.com/i474232898/garage-planner/internal/scheduler"
	"github.com/i474232898/garage-planner/internal/vehicleinfo"
	"github.com/i474232898/garage-planner/internal/weather"
)

var validate = validator.New()

// timeNow is swapped in tests.
var timeNow = func() time.Time { return time.Now().UTC() }

// Deps are the components the routes call into. Reviews may be nil.
type Deps struct {
	Garage    *garage.Garage
	Details   vehicleinfo.Lookup
	Forecasts *weather.Service
	Reviews   *scheduler.Scheduler
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/vehicles", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"vehicles": deps.Garage.List(),
		})
	})

	v1.Post("/vehicles", func(c *fiber.Ctx) error {
		var req vehicleRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		v, err := garage.NewVehicle(req.Plate, req.Model, req.Make, req.Year, req.Color)
		if err != nil {
			return garageError(err)
		}
		if err := deps.Garage.Add(c.UserContext(), v); err != nil {
			return garageError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(v)
	})

	v1.Delete("/vehicles/:plate", func(c *fiber.Ctx) error {
		plate := c.Params("plate")
		if !c.QueryBool("confirm") {
			return fiber.NewError(fiber.StatusBadRequest,
				"removing vehicle "+garage.NormalizePlate(plate)+" requires confirm=true")
		}
		if err := deps.Garage.Remove(c.UserContext(), plate); err != nil {
			return garageError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/vehicles/:plate/details", func(c *fiber.Ctx) error {
		v, err := deps.Garage.Get(c.Params("plate"))
		if err != nil {
			return garageError(err)
		}

		details, err := deps.Details.LookupByID(c.UserContext(), v.ID())
		if err != nil {
			if errors.Is(err, vehicleinfo.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load vehicle details")
		}
		return c.JSON(details)
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		q, err := parseForecastQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
		}

		forecast, err := deps.Forecasts.Forecast(c.UserContext(), q.City)
		if err != nil {
			return forecastError(err)
		}
		return c.JSON(presentForecast(forecast))
	})

	if deps.Reviews != nil {
		v1.Get("/reminders", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"reminders": deps.Reviews.Sweep(c.UserContext(), timeNow()),
			})
		})
	}
}

// vehicleRequest accepts both JSON and the HTML form encoding.
type vehicleRequest struct {
	Plate string `json:"plate" form:"plate"`
	Model string `json:"model" form:"model"`
	Make  string `json:"make" form:"make"`
	Year  int    `json:"year" form:"year"`
	Color string `json:"color" form:"color"`
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	City string `validate:"required"`
}

func parseForecastQuery(c *fiber.Ctx) (forecastQuery, error) {
	q := forecastQuery{City: strings.TrimSpace(c.Query("city"))}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func garageError(err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, garage.ErrDuplicate):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, garage.ErrVehicleNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update garage")
	}
}

func forecastError(err error) error {
	var perr *weather.ProviderError
	switch {
	case errors.Is(err, common.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrConfiguration):
		return fiber.NewError(fiber.StatusServiceUnavailable, "forecast provider is not configured")
	case errors.Is(err, weather.ErrTransport):
		return fiber.NewError(fiber.StatusBadGateway, "could not reach the forecast provider")
	case errors.As(err, &perr):
		if perr.StatusCode == http.StatusNotFound {
			return fiber.NewError(fiber.StatusNotFound, perr.Message)
		}
		return fiber.NewError(fiber.StatusBadGateway, perr.Message)
	case errors.Is(err, weather.ErrDataShape):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "could not process the forecast data")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch forecast")
	}
}
