package models

import (
	"time"
)

type User struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	Name            string           `json:"name"`
	Email           string           `json:"email" gorm:"unique"`
	Password        string           `json:"password,omitempty"`
	Phone           string           `json:"phone"`
	Avatar          string           `json:"avatar"`
	IsVerified      bool             `json:"is_verified"`
	OTP             string           `json:"otp,omitempty"`
	OTPExpiresAt    time.Time        `json:"otp_expires_at,omitempty"`
	RoleID          uint             `json:"role_id"`
	Role            Role             `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Children        []Child          `json:"children,omitempty" gorm:"foreignKey:UserID"`
	Appointments    []Appointment    `json:"appointments,omitempty" gorm:"foreignKey:UserID"`
	ProviderProfile *ProviderProfile `json:"provider_profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
