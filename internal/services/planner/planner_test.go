package planner

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrisharrington/irrigo/internal/model"
	"github.com/chrisharrington/irrigo/internal/model/entities"
)

const zonesFixture = `[
  {
    "id": "front-lawn",
    "name": "Front lawn",
    "root_depth_m": 0.3,
    "allowed_depletion_frac": 0.5,
    "irrigation_efficiency": 0.8,
    "flow_l_per_min": 15,
    "area_m2": 100,
    "precip_rate_mm_per_hr": 9,
    "current_depletion_mm": 25,
    "grass_id": "tall-fescue",
    "soil_id": "loam",
    "location": {"latitude": 41.9, "longitude": 12.5}
  }
]`

func writeZones(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.json")
	if err := os.WriteFile(path, []byte(zonesFixture), 0o644); err != nil {
		t.Fatalf("write zones fixture: %v", err)
	}
	return path
}

type stubForecast struct {
	days      []entities.DailyWeather
	err       error
	requested *int // when set, receives the horizon of the last call
}

func (s stubForecast) FetchDailyForecast(_ context.Context, _, _ float64, days int) ([]entities.DailyWeather, error) {
	if s.requested != nil {
		*s.requested = days
	}
	return s.days, s.err
}

type capturePublisher struct {
	topic   string
	payload string
}

func (c *capturePublisher) PublishMessage(topic, payload string) error {
	return c.PublishToQos(topic, 0, false, payload)
}

func (c *capturePublisher) PublishToQos(topic string, _ byte, _ bool, payload string) error {
	c.topic = topic
	c.payload = payload
	return nil
}

func (c *capturePublisher) Close() {}

func TestPlanZonePublishesPlannedEvent(t *testing.T) {
	et0 := 2.0
	days := []entities.DailyWeather{
		{Date: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), ET0Mm: &et0},
	}

	pub := &capturePublisher{}
	p, err := NewPlanner(nil, pub, stubForecast{days: days},
		writeZones(t), "event/schedulePlanned/{zone}", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.PlanZone(context.Background(), "front-lawn", 7, "req-1"); err != nil {
		t.Fatalf("plan zone: %v", err)
	}
	if pub.topic != "event/schedulePlanned/front-lawn" {
		t.Fatalf("published to %q", pub.topic)
	}

	var evt model.SchedulePlannedEvent
	if err := json.Unmarshal([]byte(pub.payload), &evt); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if evt.ZoneID != "front-lawn" || evt.RequestID != "req-1" {
		t.Fatalf("event ids wrong: %+v", evt)
	}
	if evt.EventID == "" {
		t.Fatalf("event id missing")
	}
	// Depletion 25 + 0.85*2 crosses RAW 22.5 on day one.
	if len(evt.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(evt.Entries))
	}
	if evt.TotalDepthMm != evt.Entries[0].AppliedDepthMm {
		t.Fatalf("total depth %v != entry depth %v", evt.TotalDepthMm, evt.Entries[0].AppliedDepthMm)
	}
}

func TestPlanZoneUnknownZone(t *testing.T) {
	p, err := NewPlanner(nil, &capturePublisher{}, stubForecast{}, writeZones(t), "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.PlanZone(context.Background(), "back-forty", 7, ""); err == nil {
		t.Fatalf("expected unknown zone error")
	}
}

func TestPlanZoneClampsHorizon(t *testing.T) {
	// A zero horizon falls back to the default and an oversized one is capped;
	// the stub records the horizon it was asked for.
	et0 := 0.1
	days := []entities.DailyWeather{
		{Date: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), ET0Mm: &et0},
	}
	var requested int
	pub := &capturePublisher{}
	p, err := NewPlanner(nil, pub, stubForecast{days: days, requested: &requested}, writeZones(t), "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.PlanZone(context.Background(), "front-lawn", 0, ""); err != nil {
		t.Fatalf("plan zone: %v", err)
	}
	if pub.payload == "" {
		t.Fatalf("no event published")
	}
	if requested != defaultHorizonDays {
		t.Fatalf("horizon = %d, want default %d", requested, defaultHorizonDays)
	}

	if err := p.PlanZone(context.Background(), "front-lawn", maxHorizonDays+5, ""); err != nil {
		t.Fatalf("plan zone: %v", err)
	}
	if requested != maxHorizonDays {
		t.Fatalf("horizon = %d, want cap %d", requested, maxHorizonDays)
	}
}
