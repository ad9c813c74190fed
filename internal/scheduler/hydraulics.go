package scheduler

import (
	"github.com/chrisharrington/irrigo/internal/model/entities"
)

// Hydraulics are the per-zone constants the cycle planner works from. They are
// pure derivations of the zone and soil configuration.
type Hydraulics struct {
	PrecipRateMmPerHr float64
	MaxCycleMin       float64 // 0 means a single unbounded cycle
	SoakMin           int
}

// DeriveHydraulics computes the precipitation rate, the longest run that stays
// within the soil's infiltration capacity, and the soak interval between runs.
func DeriveHydraulics(zone entities.Zone) Hydraulics {
	h := Hydraulics{
		PrecipRateMmPerHr: precipRate(zone),
		SoakMin:           soakMinutes(zone.Soil.InfiltrationMmPerHr),
	}
	if zone.Soil.InfiltrationMmPerHr > 0 {
		h.MaxCycleMin = zone.Soil.InfiltrationMmPerHr / h.PrecipRateMmPerHr * 60
	}
	return h
}

// precipRate prefers the zone's explicit rate; otherwise it follows from flow
// over area (1 L/m2 is 1 mm of depth, hence the factor 60 for L/min -> mm/hr).
func precipRate(zone entities.Zone) float64 {
	if zone.PrecipRateMmPerHr != nil {
		return *zone.PrecipRateMmPerHr
	}
	return 60 * zone.FlowLPerMin / zone.AreaM2
}

// soakMinutes maps the soil infiltration rate onto the idle interval that lets
// applied water drain before the next run. Tighter soils soak longer.
func soakMinutes(infiltrationMmPerHr float64) int {
	switch {
	case infiltrationMmPerHr >= 20:
		return 15
	case infiltrationMmPerHr >= 12:
		return 25
	case infiltrationMmPerHr >= 8:
		return 35
	case infiltrationMmPerHr >= 5:
		return 45
	default:
		return 60
	}
}
