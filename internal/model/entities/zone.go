package entities

// Location is a geographic point attached to a zone. The planner carries it
// through to the weather provider; the scheduling kernel never reads it.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Zone describes a single irrigation zone: the turf and soil it waters and the
// hydraulic configuration of its emitters. Field names carry their units.
type Zone struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name"`
	Enabled *bool  `json:"enabled,omitempty"` // nil means enabled

	RootDepthM           float64  `json:"root_depth_m" validate:"gt=0"`
	AllowedDepletionFrac float64  `json:"allowed_depletion_frac" validate:"gt=0,lte=1"`
	IrrigationEfficiency float64  `json:"irrigation_efficiency" validate:"gt=0,lte=1"`
	FlowLPerMin          float64  `json:"flow_l_per_min" validate:"gte=0"`
	AreaM2               float64  `json:"area_m2" validate:"gte=0"`
	PrecipRateMmPerHr    *float64 `json:"precip_rate_mm_per_hr,omitempty" validate:"omitempty,gt=0"`
	CurrentDepletionMm   *float64 `json:"current_depletion_mm,omitempty"`

	Grass Grass `json:"grass"`
	Soil  Soil  `json:"soil"`

	Location *Location `json:"location,omitempty"`
}

// IsEnabled reports whether the zone participates in scheduling. An absent
// flag counts as enabled; only an explicit false disables the zone.
func (z Zone) IsEnabled() bool {
	return z.Enabled == nil || *z.Enabled
}

// TotalAvailableWaterMm is the water (mm) the root zone holds between field
// capacity and wilting point.
func (z Zone) TotalAvailableWaterMm() float64 {
	return z.Soil.AWHCMmPerM * z.RootDepthM
}
