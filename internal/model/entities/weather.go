package entities

import "time"

// DailyWeather is one forecast day. ET0, rain and sunrise are optional on the
// wire; the scheduler substitutes 0, 0 and 06:00 local respectively.
type DailyWeather struct {
	Date       time.Time  `json:"date"`
	ET0Mm      *float64   `json:"et0_mm,omitempty"`
	RainfallMm *float64   `json:"rainfall_mm,omitempty"`
	Sunrise    *time.Time `json:"sunrise,omitempty"`
}
