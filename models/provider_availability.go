package models

import (
	"time"

	"gorm.io/gorm"
)

// ProviderAvailability is a date-specific override of the weekly
// template. IsAvailable=true adds an extra bookable window on that
// date; IsAvailable=false removes availability. An exclusion stored
// with the 00:00-00:00 sentinel blocks the whole date, otherwise only
// the given window is removed.
type ProviderAvailability struct {
	gorm.Model
	ProviderProfileID uint            `json:"provider_profile_id" gorm:"index:idx_availability_provider_date"`
	ProviderProfile   ProviderProfile `json:"-" gorm:"foreignKey:ProviderProfileID"`
	Date              time.Time       `json:"date" gorm:"type:date;index:idx_availability_provider_date"`
	StartTime         string          `json:"start_time"` // "HH:MM", 24h
	EndTime           string          `json:"end_time"`   // "HH:MM", 24h
	IsAvailable       bool            `json:"is_available"`
	Reason            string          `json:"reason"`
}

// WholeDay reports whether an exclusion covers the entire date.
func (a *ProviderAvailability) WholeDay() bool {
	return !a.IsAvailable && a.StartTime == "00:00" && a.EndTime == "00:00"
}
