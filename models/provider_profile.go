package models

import (
	"gorm.io/gorm"
)

// ProviderProfile holds the bookable identity of a specialist provider.
// Schedules, availability overrides and appointments all hang off the
// profile, not the user row.
type ProviderProfile struct {
	gorm.Model
	UserID             uint                   `json:"user_id" gorm:"uniqueIndex"`
	User               User                   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Specialization     string                 `json:"specialization"`
	Bio                string                 `json:"bio"`
	Title              string                 `json:"title"`
	YearsExperience    int                    `json:"years_experience"`
	SlotDuration       int                    `json:"slot_duration" gorm:"default:30"` // minutes
	IsAvailable        bool                   `json:"is_available" gorm:"default:true"`
	ConsultationFee    float64                `json:"consultation_fee"`
	AdvanceBookingDays int                    `json:"advance_booking_days" gorm:"default:30"`
	Province           string                 `json:"province"`
	City               string                 `json:"city"`
	ClinicName         string                 `json:"clinic_name"`
	OfficeAddress      string                 `json:"office_address"`
	Rating             float64                `json:"rating" gorm:"type:decimal(3,2);default:0"`
	TotalReviews       int                    `json:"total_reviews" gorm:"default:0"`
	Schedules          []ProviderSchedule     `json:"schedules,omitempty" gorm:"foreignKey:ProviderProfileID"`
	Availability       []ProviderAvailability `json:"availability,omitempty" gorm:"foreignKey:ProviderProfileID"`
	Appointments       []Appointment          `json:"appointments,omitempty" gorm:"foreignKey:ProviderProfileID"`
}
