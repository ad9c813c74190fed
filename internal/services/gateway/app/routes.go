// Package app wires the HTTP surface of the planner: zone listings, on-demand
// schedules and the greeting endpoint the mobile shell pings at startup.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/chrisharrington/irrigo/internal/model/entities"
	"github.com/chrisharrington/irrigo/internal/scheduler"
)

var validate = validator.New()

const forecastTimeout = 10 * time.Second

// ForecastSource returns a chronological daily forecast for a coordinate.
type ForecastSource interface {
	FetchDailyForecast(ctx context.Context, lat, lon float64, days int) ([]entities.DailyWeather, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, zones map[string]entities.Zone, forecast ForecastSource) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	v1 := app.Group("/api/v1")

	v1.Get("/greeting", func(c *fiber.Ctx) error {
		name := c.Query("name", "there")
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("Hello, %s! Your lawn thanks you.", name),
		})
	})

	v1.Get("/zones", func(c *fiber.Ctx) error {
		out := make([]entities.Zone, 0, len(zones))
		for _, z := range zones {
			out = append(out, z)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return c.JSON(out)
	})

	v1.Get("/zones/:id/schedule", func(c *fiber.Ctx) error {
		var req scheduleQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		zone, ok := zones[c.Params("id")]
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown zone")
		}
		if zone.Location == nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "zone has no location for forecasting")
		}

		ctx, cancel := context.WithTimeout(c.Context(), forecastTimeout)
		defer cancel()
		days, err := forecast.FetchDailyForecast(ctx, zone.Location.Latitude, zone.Location.Longitude, req.Days)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "forecast unavailable")
		}

		entries, err := scheduler.PlanZoneSchedule(zone, days)
		if err != nil {
			if errors.Is(err, scheduler.ErrInvalidZone) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to plan schedule")
		}

		return c.JSON(fiber.Map{
			"zone_id": zone.ID,
			"days":    req.Days,
			"entries": entries,
		})
	})
}

// scheduleQuery holds the query parameters for the schedule endpoint.
type scheduleQuery struct {
	Days int `validate:"required,min=1,max=16"`
}

func (q *scheduleQuery) bind(c *fiber.Ctx) error {
	q.Days = c.QueryInt("days")
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("days must be between 1 and 16: %w", err)
	}
	return nil
}
