package utils

import (
	"os"
	"time"
)

// ClinicLocation returns the deployment timezone. All dates and clock
// times are interpreted in this single locale; there is no per-user
// timezone handling.
func ClinicLocation() *time.Location {
	tz := os.Getenv("CLINIC_TZ")
	if tz == "" {
		tz = "Africa/Algiers"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ClinicNow returns the current time in the clinic timezone.
func ClinicNow() time.Time {
	return time.Now().In(ClinicLocation())
}

// ParseDate parses a "YYYY-MM-DD" date in the clinic timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, ClinicLocation())
}
