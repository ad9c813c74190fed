package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	schedulesPlanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "irrigo_schedules_planned_total",
		Help: "Schedules computed and published, per zone.",
	}, []string{"zone_id"})

	irrigationEventsPlanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigo_irrigation_days_planned_total",
		Help: "Irrigation days emitted across all planned schedules.",
	})

	plannedDepthMm = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "irrigo_planned_depth_mm",
		Help:    "Gross applied depth per irrigation day (mm).",
		Buckets: prometheus.LinearBuckets(5, 5, 10),
	})

	forecastFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "irrigo_forecast_fetch_failures_total",
		Help: "Forecast provider calls that failed after retries.",
	})
)
