package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chrisharrington/irrigo/internal/services/planner"
	"github.com/chrisharrington/irrigo/internal/services/weather"
	"github.com/chrisharrington/irrigo/pkg/mqttbus"
)

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("planner: no .env file: %v", err)
	}

	cfg := struct {
		Broker mqttbus.BrokerConfig

		InfluxURL    string
		InfluxToken  string
		InfluxOrg    string
		InfluxBucket string

		ZonesPath       string
		RequestTopic    string
		ResultTopicTmpl string
		ReplanAt        string // "HH:MM" local

		HTTPPort int
	}{
		Broker: mqttbus.BrokerConfig{
			Host:     envStr("MQTT_HOST", "localhost"),
			Port:     envInt("MQTT_PORT", 1883),
			User:     envStr("MQTT_USER", "guest"),
			Password: envStr("MQTT_PASSWORD", "guest"),
			ClientID: envStr("HOSTNAME", "planner") + "-" + uuid.NewString()[:8],
		},

		InfluxURL:    envStr("INFLUX_URL", "http://localhost:8086"),
		InfluxToken:  os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:    envStr("INFLUX_ORG", "irrigo"),
		InfluxBucket: envStr("INFLUX_BUCKET", "schedules"),

		ZonesPath:       envStr("ZONES_PATH", "config/zones.json"),
		RequestTopic:    envStr("SCHEDULE_REQUEST_TOPIC", "schedule/request/#"),
		ResultTopicTmpl: envStr("SCHEDULE_RESULT_TOPIC", "event/schedulePlanned/{zone}"),
		ReplanAt:        envStr("REPLAN_AT", "03:30"),

		HTTPPort: envInt("HTTP_PORT", 8080),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === InfluxDB ===
	influx := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	defer influx.Close()
	writer := planner.NewWriter(influx.WriteAPI(cfg.InfluxOrg, cfg.InfluxBucket))

	// === MQTT ===
	client, err := mqttbus.Connect(ctx, &cfg.Broker)
	if err != nil {
		log.Fatalf("planner: mqtt connection error: %v", err)
	}
	defer mqttbus.Close(client)

	publisher := mqttbus.NewPublisher(client)
	consumer := mqttbus.NewConsumer(client, cfg.RequestTopic, nil)

	// === Planner ===
	p, err := planner.NewPlanner(consumer, publisher, weather.NewOpenMeteoClient(),
		cfg.ZonesPath, cfg.ResultTopicTmpl, writer)
	if err != nil {
		log.Fatalf("planner: init error: %v", err)
	}

	// === Daily replan job ===
	sched := gocron.NewScheduler(time.Local)
	if _, err := sched.Every(1).Day().At(cfg.ReplanAt).Do(func() {
		log.Printf("planner: daily replan starting")
		p.PlanAll(ctx)
	}); err != nil {
		log.Fatalf("planner: replan job error: %v", err)
	}
	sched.StartAsync()
	defer sched.Stop()

	// === HTTP: health + metrics ===
	mux := http.NewServeMux()
	mux.Handle("/healthz", planner.NewHealthHandler(client, influx, writer))
	mux.Handle("/readyz", planner.NewReadyHandler(client, influx, writer, 2*time.Second))
	mux.Handle("/metrics", promhttp.Handler())

	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("planner: HTTP listening on :%d", cfg.HTTPPort)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("planner: http server error: %v", err)
		}
	}()

	go p.Start(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Printf("planner: shutting down...")

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = hs.Shutdown(shCtx)
}
