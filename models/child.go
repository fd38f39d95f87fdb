package models

import (
	"time"

	"gorm.io/gorm"
)

// Child is a patient profile owned by a booking user. Appointments may
// optionally reference a child of the booker.
type Child struct {
	gorm.Model
	UserID       uint      `json:"user_id"`
	User         User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name         string    `json:"name"`
	DateOfBirth  time.Time `json:"date_of_birth" gorm:"type:date"`
	Gender       string    `json:"gender"`
	MedicalNotes string    `json:"medical_notes"`
}

// BelongsTo reports whether the child is owned by the given user.
func (ch *Child) BelongsTo(userID uint) bool {
	return ch.UserID == userID
}
