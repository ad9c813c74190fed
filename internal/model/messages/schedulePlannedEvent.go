package messages

import (
	"time"

	"github.com/chrisharrington/irrigo/internal/model/entities"
)

// SchedulePlannedEvent is published by the planner once a zone's schedule has
// been computed. TotalDepthMm sums the applied depth over all entries.
type SchedulePlannedEvent struct {
	EventID      string                             `json:"event_id"`
	RequestID    string                             `json:"request_id,omitempty"`
	ZoneID       string                             `json:"zone_id"`
	Entries      []entities.IrrigationScheduleEntry `json:"entries"`
	TotalDepthMm float64                            `json:"total_depth_mm"`
	GeneratedAt  time.Time                          `json:"generated_at"`
}
