// Package scheduler holds the irrigation scheduling kernel: a daily soil
// water balance over a weather forecast, coupled with a cycle planner that
// keeps each run within the soil's infiltration capacity. The kernel is pure:
// it does no I/O and given identical inputs produces identical schedules.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/chrisharrington/irrigo/internal/model/entities"
)

// ErrInvalidZone marks a zone configuration the kernel refuses to plan for.
// Callers are expected to validate zones at their boundary; this is the
// backstop that keeps a bad config from turning into NaN in the output.
var ErrInvalidZone = errors.New("invalid zone configuration")

var validate = validator.New()

// ValidateZone checks the structural constraints on a zone (positive depths,
// fractions in (0,1], non-negative rates) plus the cross-field requirement
// that a precipitation rate is either supplied or derivable from flow/area.
func ValidateZone(zone entities.Zone) error {
	if err := validate.Struct(zone); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidZone, err)
	}
	if zone.PrecipRateMmPerHr == nil && (zone.FlowLPerMin <= 0 || zone.AreaM2 <= 0) {
		return fmt.Errorf("%w: no precipitation rate and flow/area do not derive one", ErrInvalidZone)
	}
	return nil
}

// PlanZoneSchedule walks the forecast in order, advancing the zone's soil
// water depletion day by day and emitting an irrigation entry whenever the
// depletion reaches the readily available water. Each entry refills the
// profile to field capacity with pre-sunrise cycles sized by the hydraulic
// model. The input zone is never mutated.
func PlanZoneSchedule(zone entities.Zone, weather []entities.DailyWeather) ([]entities.IrrigationScheduleEntry, error) {
	if err := ValidateZone(zone); err != nil {
		return nil, err
	}
	if !zone.IsEnabled() {
		return nil, nil
	}

	hyd := DeriveHydraulics(zone)
	taw := zone.TotalAvailableWaterMm()
	raw := zone.AllowedDepletionFrac * taw

	depletion := 0.0
	if zone.CurrentDepletionMm != nil {
		depletion = clamp(*zone.CurrentDepletionMm, 0, taw)
	}

	var schedule []entities.IrrigationScheduleEntry
	for _, day := range weather {
		sunrise := resolveSunrise(day)
		etc := zone.Grass.Kc * math.Max(0, optionalMm(day.ET0Mm))
		rain := effectiveRainfall(optionalMm(day.RainfallMm))

		depletion = clamp(depletion+etc-rain, 0, taw)

		if depletion >= raw {
			before := depletion

			// Refill to field capacity, capped so a low efficiency can
			// never push a single event past one TAW of gross water.
			gross := math.Min(before/zone.IrrigationEfficiency, taw)
			runtimeMin := gross / hyd.PrecipRateMmPerHr * 60

			schedule = append(schedule, entities.IrrigationScheduleEntry{
				Date:              day.Date,
				ZoneID:            zone.ID,
				Cycles:            planCycles(runtimeMin, hyd.MaxCycleMin, sunrise, hyd.SoakMin),
				AppliedDepthMm:    round1(gross),
				DepletionBeforeMm: round1(before),
				DepletionAfterMm:  0,
			})

			// The profile is full again; the same day's demand and rain
			// still act on it so the next day starts from the right state.
			depletion = clamp(etc-rain, 0, taw)
		}
	}
	return schedule, nil
}

// effectiveRainfall discounts light rain lost to canopy interception (below
// 2 mm nothing reaches the root zone) and derates the rest for runoff and
// uneven distribution.
func effectiveRainfall(rainMm float64) float64 {
	if rainMm < 2 {
		return 0
	}
	return 0.8 * rainMm
}

// resolveSunrise picks the day's sunrise, falling back to 06:00 local time on
// the day's date when the forecast carries none.
func resolveSunrise(day entities.DailyWeather) time.Time {
	if day.Sunrise != nil {
		return *day.Sunrise
	}
	d := day.Date
	return time.Date(d.Year(), d.Month(), d.Day(), 6, 0, 0, 0, d.Location())
}

func optionalMm(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round1 rounds to one decimal, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
