package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment is a booked slot. The composite of provider profile,
// date and start time is protected by a partial unique index on
// non-cancelled rows (see db.Migrate), which is the authoritative
// double-booking guard.
type Appointment struct {
	gorm.Model
	Reference         string            `json:"reference" gorm:"uniqueIndex"`
	UserID            uint              `json:"user_id" gorm:"index"`
	User              User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ChildID           *uint             `json:"child_id"`
	Child             *Child            `json:"child,omitempty" gorm:"foreignKey:ChildID"`
	ProviderProfileID uint              `json:"provider_profile_id" gorm:"index"`
	ProviderProfile   ProviderProfile   `json:"provider_profile,omitempty" gorm:"foreignKey:ProviderProfileID"`
	AppointmentDate   time.Time         `json:"appointment_date" gorm:"type:date"`
	StartTime         string            `json:"start_time"` // "HH:MM", 24h
	EndTime           string            `json:"end_time"`   // "HH:MM", 24h
	Status            AppointmentStatus `json:"status"`
	Notes             string            `json:"notes"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.Reference == "" {
		a.Reference = uuid.NewString()
	}
	return nil
}

// IsTerminal reports whether no further transition is permitted.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransition validates a status change against the lifecycle table:
// pending -> confirmed|cancelled, confirmed -> completed|cancelled|no_show.
func (a *Appointment) CanTransition(newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusCancelled && newStatus != StatusNoShow {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	default:
		return fmt.Errorf("unknown status %s", a.Status)
	}
	return nil
}

// UpdateStatus applies a validated transition and persists it.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if err := a.CanTransition(newStatus); err != nil {
		return err
	}
	a.Status = newStatus
	return tx.Save(a).Error
}
