// Package planner is the message-plane service around the scheduling kernel:
// it consumes schedule requests, fetches the forecast, runs the kernel and
// publishes the resulting plan.
package planner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/chrisharrington/irrigo/internal/model"
	"github.com/chrisharrington/irrigo/internal/model/entities"
	"github.com/chrisharrington/irrigo/internal/scheduler"
	"github.com/chrisharrington/irrigo/internal/zonecfg"
	"github.com/chrisharrington/irrigo/pkg/dedup"
	"github.com/chrisharrington/irrigo/pkg/mqttbus"
)

const (
	defaultHorizonDays = 7
	maxHorizonDays     = 16
	fetchTimeout       = 10 * time.Second
)

// ForecastClient returns a chronological daily forecast for a coordinate.
type ForecastClient interface {
	FetchDailyForecast(ctx context.Context, lat, lon float64, days int) ([]entities.DailyWeather, error)
}

// Planner wires the kernel to the broker: requests in, planned schedules out.
type Planner struct {
	consumer  mqttbus.IConsumer[model.ScheduleRequestEvent]
	publisher mqttbus.IPublisher
	forecast  ForecastClient
	zones     map[string]entities.Zone

	resultTopicTmpl string
	writer          *Writer

	// drops QoS1 redeliveries of identical requests
	deduper *dedup.Deduper
}

func NewPlanner(
	consumer mqttbus.IConsumer[model.ScheduleRequestEvent],
	publisher mqttbus.IPublisher,
	forecast ForecastClient,
	zonesPath string,
	resultTopicTmpl string,
	writer *Writer,
) (*Planner, error) {
	if publisher == nil {
		return nil, errors.New("publisher is nil")
	}
	if forecast == nil {
		return nil, errors.New("forecast client is nil")
	}

	zones, err := zonecfg.Load(zonesPath)
	if err != nil {
		return nil, fmt.Errorf("load zones: %w", err)
	}

	p := &Planner{
		consumer:        consumer,
		publisher:       publisher,
		forecast:        forecast,
		zones:           zones,
		resultTopicTmpl: firstNonEmpty(resultTopicTmpl, "event/schedulePlanned/{zone}"),
		writer:          writer,
		deduper:         dedup.New(10*time.Minute, 20000),
	}
	if consumer != nil {
		consumer.SetHandler(p.handleRequest)
	}
	return p, nil
}

func (p *Planner) Start(ctx context.Context) {
	if p.consumer != nil {
		go p.consumer.ConsumeMessage(ctx)
	}
	<-ctx.Done()
}

// Zones returns the configured zones keyed by id.
func (p *Planner) Zones() map[string]entities.Zone {
	return p.zones
}

func (p *Planner) handleRequest(_ string, msg mqtt.Message) error {
	// Dedup before unmarshal: identical QoS1 redeliveries are dropped cheaply.
	h := sha256.Sum256(msg.Payload())
	if !p.deduper.ShouldProcess(hex.EncodeToString(h[:])) {
		return nil
	}

	var req model.ScheduleRequestEvent
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		log.Printf("planner: bad request payload: %v", err)
		return nil
	}

	if err := p.PlanZone(context.Background(), req.ZoneID, req.HorizonDays, req.RequestID); err != nil {
		log.Printf("planner: plan %s: %v", req.ZoneID, err)
	}
	return nil
}

// PlanZone fetches the forecast for one configured zone, runs the kernel and
// publishes the planned schedule.
func (p *Planner) PlanZone(ctx context.Context, zoneID string, horizonDays int, requestID string) error {
	zone, ok := p.zones[zoneID]
	if !ok {
		return fmt.Errorf("unknown zone %q", zoneID)
	}
	if zone.Location == nil {
		return fmt.Errorf("zone %q has no location for forecasting", zoneID)
	}

	days := horizonDays
	if days <= 0 {
		days = defaultHorizonDays
	}
	if days > maxHorizonDays {
		days = maxHorizonDays
	}

	fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	forecast, err := p.forecast.FetchDailyForecast(fctx, zone.Location.Latitude, zone.Location.Longitude, days)
	if err != nil {
		forecastFetchFailures.Inc()
		return fmt.Errorf("forecast: %w", err)
	}

	entries, err := scheduler.PlanZoneSchedule(zone, forecast)
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}

	evt := model.SchedulePlannedEvent{
		EventID:     uuid.NewString(),
		RequestID:   requestID,
		ZoneID:      zoneID,
		Entries:     entries,
		GeneratedAt: time.Now().UTC(),
	}
	for _, e := range entries {
		evt.TotalDepthMm += e.AppliedDepthMm
	}

	b, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal planned event: %w", err)
	}
	topic := strings.ReplaceAll(p.resultTopicTmpl, "{zone}", zoneID)
	if err := p.publisher.PublishToQos(topic, 1, false, string(b)); err != nil {
		return fmt.Errorf("publish planned event: %w", err)
	}

	schedulesPlanned.WithLabelValues(zoneID).Inc()
	irrigationEventsPlanned.Add(float64(len(entries)))
	for _, e := range entries {
		plannedDepthMm.Observe(e.AppliedDepthMm)
	}
	if p.writer != nil {
		p.writer.RecordSchedule(evt)
	}

	log.Printf("planner: %s planned %d irrigation day(s), %.1fmm total, topic=%s",
		zoneID, len(entries), evt.TotalDepthMm, topic)
	return nil
}

// PlanAll replans every configured zone; the daily job drives it.
func (p *Planner) PlanAll(ctx context.Context) {
	for id := range p.zones {
		if err := p.PlanZone(ctx, id, defaultHorizonDays, ""); err != nil {
			log.Printf("planner: replan %s: %v", id, err)
		}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
