package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// ProviderSchedule is one entry of a provider's recurring weekly
// template. Several entries per day are allowed (split shifts) but they
// must not overlap; the bulk update endpoint enforces that.
type ProviderSchedule struct {
	gorm.Model
	ProviderProfileID uint            `json:"provider_profile_id" gorm:"index"`
	ProviderProfile   ProviderProfile `json:"-" gorm:"foreignKey:ProviderProfileID"`
	DayOfWeek         DayOfWeek       `json:"day_of_week"`
	StartTime         string          `json:"start_time"` // "HH:MM", 24h
	EndTime           string          `json:"end_time"`   // "HH:MM", 24h
	SlotDuration      int             `json:"slot_duration"` // minutes, falls back to profile default when 0
	IsActive          bool            `json:"is_active" gorm:"default:true"`
}
