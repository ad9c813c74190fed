package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chrisharrington/irrigo/internal/model/entities"
)

type stubForecast struct {
	days []entities.DailyWeather
	err  error
}

func (s stubForecast) FetchDailyForecast(_ context.Context, _, _ float64, _ int) ([]entities.DailyWeather, error) {
	return s.days, s.err
}

func testZones() map[string]entities.Zone {
	rate := 9.0
	depletion := 25.0
	return map[string]entities.Zone{
		"front-lawn": {
			ID:                   "front-lawn",
			RootDepthM:           0.3,
			AllowedDepletionFrac: 0.5,
			IrrigationEfficiency: 0.8,
			FlowLPerMin:          15,
			AreaM2:               100,
			PrecipRateMmPerHr:    &rate,
			CurrentDepletionMm:   &depletion,
			Grass:                entities.Grass{Name: "tall fescue", Kc: 0.85},
			Soil:                 entities.Soil{Name: "loam", AWHCMmPerM: 150, InfiltrationMmPerHr: 25},
			Location:             &entities.Location{Latitude: 41.9, Longitude: 12.5},
		},
	}
}

func testApp(src ForecastSource) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, testZones(), src)
	return app
}

// TestScheduleDaysValidation verifies the endpoint enforces the expected
// 1-16 range for the `days` query parameter.
func TestScheduleDaysValidation(t *testing.T) {
	app := testApp(stubForecast{})

	// Missing days parameter should return 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/zones/front-lawn/schedule", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Out-of-range days value should also return 400.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/zones/front-lawn/schedule?days=17", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestScheduleUnknownZone(t *testing.T) {
	app := testApp(stubForecast{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zones/back-forty/schedule?days=7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestScheduleReturnsPlannedEntries(t *testing.T) {
	et0 := 2.0
	src := stubForecast{days: []entities.DailyWeather{
		{Date: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), ET0Mm: &et0},
	}}
	app := testApp(src)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zones/front-lawn/schedule?days=7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		ZoneID  string                             `json:"zone_id"`
		Entries []entities.IrrigationScheduleEntry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.ZoneID != "front-lawn" {
		t.Fatalf("zone id = %q", body.ZoneID)
	}
	if len(body.Entries) != 1 {
		t.Fatalf("entries = %d, want 1 (depletion 26.7 over RAW 22.5)", len(body.Entries))
	}
}

func TestGreeting(t *testing.T) {
	app := testApp(stubForecast{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/greeting?name=Sam", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["message"] != "Hello, Sam! Your lawn thanks you." {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestZonesListing(t *testing.T) {
	app := testApp(stubForecast{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zones", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var zones []entities.Zone
	if err := json.NewDecoder(resp.Body).Decode(&zones); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(zones) != 1 || zones[0].ID != "front-lawn" {
		t.Fatalf("zones = %+v", zones)
	}
}
