package entities

import "time"

// IrrigationCycle is a single valve run: when it opens and for how long.
type IrrigationCycle struct {
	StartTime   time.Time `json:"start_time"`
	DurationMin float64   `json:"duration_min"`
}

// IrrigationScheduleEntry records one irrigation day for a zone: the cycles to
// run before sunrise and the water-balance bookkeeping around them. Depths and
// depletions are millimetres rounded to one decimal.
type IrrigationScheduleEntry struct {
	Date              time.Time         `json:"date"`
	ZoneID            string            `json:"zone_id"`
	Cycles            []IrrigationCycle `json:"cycles"`
	AppliedDepthMm    float64           `json:"applied_depth_mm"`
	DepletionBeforeMm float64           `json:"depletion_before_mm"`
	DepletionAfterMm  float64           `json:"depletion_after_mm"`
}
