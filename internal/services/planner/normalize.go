package planner

import (
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/chrisharrington/irrigo/internal/model"
	"github.com/chrisharrington/irrigo/internal/model/entities"
)

// entryToPoint flattens one irrigation day into an Influx point on the
// irrigation_schedule measurement, tagged by zone and stamped with the
// irrigation date.
func entryToPoint(evt model.SchedulePlannedEvent, entry entities.IrrigationScheduleEntry) *write.Point {
	tags := map[string]string{
		"zone_id": entry.ZoneID,
	}
	if evt.EventID != "" {
		tags["event_id"] = evt.EventID
	}

	fields := map[string]interface{}{
		"applied_depth_mm":    entry.AppliedDepthMm,
		"depletion_before_mm": entry.DepletionBeforeMm,
		"depletion_after_mm":  entry.DepletionAfterMm,
		"cycle_count":         int64(len(entry.Cycles)),
	}
	if len(entry.Cycles) > 0 {
		first := entry.Cycles[0]
		fields["first_cycle_start"] = first.StartTime.Format("15:04")
		fields["cycle_duration_min"] = first.DurationMin
	}

	return influxdb2.NewPoint("irrigation_schedule", tags, fields, entry.Date)
}
