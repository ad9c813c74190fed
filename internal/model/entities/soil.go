package entities

// Soil carries the two physical soil properties the scheduler needs: how much
// water the profile can hold and how fast the surface can absorb it.
type Soil struct {
	Name                string  `json:"name"`
	AWHCMmPerM          float64 `json:"awhc_mm_per_m" validate:"gt=0"`
	InfiltrationMmPerHr float64 `json:"infiltration_mm_per_hr" validate:"gte=0"`
}
