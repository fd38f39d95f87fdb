package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sahtee/clinic-booking/db"
	"github.com/sahtee/clinic-booking/models"
	"github.com/sahtee/clinic-booking/redis"
	"github.com/sahtee/clinic-booking/scheduling"
	"github.com/sahtee/clinic-booking/utils"
)

// ownProfile fetches the provider profile of the authenticated user.
func ownProfile(c *fiber.Ctx) (*models.ProviderProfile, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return nil, fmt.Errorf("user ID not found in context")
	}
	var profile models.ProviderProfile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, fmt.Errorf("provider profile not found")
	}
	return &profile, nil
}

// GetSchedule returns the authenticated provider's weekly template.
func GetSchedule(c *fiber.Ctx) error {
	profile, err := ownProfile(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
			Error:   err.Error(),
		})
	}

	var schedules []models.ProviderSchedule
	if err := db.DB.Where("provider_profile_id = ? AND is_active = ?", profile.ID, true).
		Order("day_of_week").Order("start_time").
		Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch schedule",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"schedules": schedules,
		"profile":   profile,
	})
}

type scheduleEntryRequest struct {
	DayOfWeek    int    `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SlotDuration int    `json:"slot_duration"`
}

type bulkScheduleRequest struct {
	Schedules []scheduleEntryRequest `json:"schedules"`
}

// BulkUpdateSchedule atomically replaces the provider's weekly
// template. Existing appointments are never cancelled by a schedule
// change; bookings that fall outside the new template are returned as
// warnings for the provider to resolve manually.
func BulkUpdateSchedule(c *fiber.Ctx) error {
	profile, err := ownProfile(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
			Error:   err.Error(),
		})
	}

	req := new(bulkScheduleRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if len(req.Schedules) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "At least one schedule entry is required",
		})
	}

	entries := make([]scheduling.WeekEntry, 0, len(req.Schedules))
	for _, s := range req.Schedules {
		iv, err := scheduling.NewInterval(s.StartTime, s.EndTime)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: fmt.Sprintf("Invalid window %s-%s on day %d", s.StartTime, s.EndTime, s.DayOfWeek),
				Error:   err.Error(),
			})
		}
		entries = append(entries, scheduling.WeekEntry{DayOfWeek: s.DayOfWeek, Interval: iv})
	}
	if err := scheduling.ValidateWeek(entries); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Schedule entries overlap",
			Error:   err.Error(),
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_profile_id = ?", profile.ID).
			Delete(&models.ProviderSchedule{}).Error; err != nil {
			return err
		}
		for i, s := range req.Schedules {
			entry := models.ProviderSchedule{
				ProviderProfileID: profile.ID,
				DayOfWeek:         models.DayOfWeek(s.DayOfWeek),
				StartTime:         entries[i].Interval.StartClock(),
				EndTime:           entries[i].Interval.EndClock(),
				SlotDuration:      s.SlotDuration,
				IsActive:          true,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update schedule",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProvider(profile.ID)

	warnings := scheduleConflictWarnings(profile.ID, entries)

	var schedules []models.ProviderSchedule
	db.DB.Where("provider_profile_id = ?", profile.ID).
		Order("day_of_week").Order("start_time").Find(&schedules)

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Schedule updated successfully!",
		"schedules": schedules,
		"warnings":  warnings,
	})
}

// scheduleConflictWarnings lists upcoming booked appointments that no
// longer fit inside the new weekly template.
func scheduleConflictWarnings(profileID uint, entries []scheduling.WeekEntry) []string {
	today := utils.ClinicNow().Format("2006-01-02")

	var upcoming []models.Appointment
	if err := db.DB.
		Where("provider_profile_id = ? AND appointment_date >= ? AND status IN ?",
			profileID, today, []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&upcoming).Error; err != nil {
		return nil
	}

	var warnings []string
	for _, a := range upcoming {
		iv, err := scheduling.NewInterval(a.StartTime, a.EndTime)
		if err != nil {
			continue
		}
		day := int(a.AppointmentDate.Weekday())
		covered := false
		for _, e := range entries {
			if e.DayOfWeek == day && iv.Start >= e.Interval.Start && iv.End <= e.Interval.End {
				covered = true
				break
			}
		}
		if !covered {
			warnings = append(warnings, fmt.Sprintf(
				"appointment %s on %s %s-%s falls outside the new schedule",
				a.Reference, a.AppointmentDate.Format("2006-01-02"), a.StartTime, a.EndTime))
		}
	}
	return warnings
}
