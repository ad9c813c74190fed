package messages

import "time"

// ScheduleRequestEvent asks the planner to (re)compute the watering plan for a
// zone over the next HorizonDays of forecast.
type ScheduleRequestEvent struct {
	RequestID   string    `json:"request_id"`
	ZoneID      string    `json:"zone_id"`
	HorizonDays int       `json:"horizon_days"`
	Timestamp   time.Time `json:"timestamp"`
}
