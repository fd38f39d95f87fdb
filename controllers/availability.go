package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sahtee/clinic-booking/db"
	"github.com/sahtee/clinic-booking/models"
	"github.com/sahtee/clinic-booking/redis"
	"github.com/sahtee/clinic-booking/scheduling"
	"github.com/sahtee/clinic-booking/utils"
)

type availabilityRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// AddAvailability registers an extra bookable window on a specific
// date, independent of the weekly template.
func AddAvailability(c *fiber.Ctx) error {
	profile, err := ownProfile(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
			Error:   err.Error(),
		})
	}

	req := new(availabilityRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	override, resp := buildOverride(profile.ID, req, true)
	if resp != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(*resp)
	}

	iv, _ := scheduling.NewInterval(override.StartTime, override.EndTime)
	overlaps, err := overlapsDayWindows(profile.ID, override.Date, iv)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check existing availability",
			Error:   err.Error(),
		})
	}
	if overlaps {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Window overlaps the weekly schedule or another added window on that date",
		})
	}

	if err := db.DB.Create(override).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "This availability window already exists for that date",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to add availability",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProvider(profile.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "Availability added successfully!",
		"availability": override,
	})
}

type bulkAvailabilityRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	DaysOfWeek []int  `json:"days_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Reason     string `json:"reason"`
}

// BulkAddAvailability adds the same window on every matching weekday in
// a date range.
func BulkAddAvailability(c *fiber.Ctx) error {
	profile, err := ownProfile(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
			Error:   err.Error(),
		})
	}

	req := new(bulkAvailabilityRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid start date, use YYYY-MM-DD",
			Error:   err.Error(),
		})
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil || end.Before(start) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid end date",
		})
	}
	if len(req.DaysOfWeek) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "At least one day of week is required",
		})
	}
	iv, err := scheduling.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid time window",
			Error:   err.Error(),
		})
	}

	wanted := map[int]bool{}
	for _, d := range req.DaysOfWeek {
		if d < 0 || d > 6 {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "Days of week must be between 0 and 6",
			})
		}
		wanted[d] = true
	}

	created := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !wanted[int(d.Weekday())] {
			continue
		}
		if overlaps, err := overlapsDayWindows(profile.ID, d, iv); err != nil || overlaps {
			continue
		}
		override := models.ProviderAvailability{
			ProviderProfileID: profile.ID,
			Date:              d,
			StartTime:         iv.StartClock(),
			EndTime:           iv.EndClock(),
			IsAvailable:       true,
			Reason:            req.Reason,
		}
		if err := db.DB.Create(&override).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue // window already present on that date
			}
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to add availability",
				Error:   err.Error(),
			})
		}
		created++
	}

	redis.InvalidateProvider(profile.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Availability added successfully!",
		"created": created,
	})
}

type excludeRequest struct {
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// ExcludeDates blocks availability over a date range. Without times the
// whole day is excluded; with times only the given window.
func ExcludeDates(c *fiber.Ctx) error {
	profile, err := ownProfile(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
			Error:   err.Error(),
		})
	}

	req := new(excludeRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	from, err := utils.ParseDate(req.FromDate)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid from date, use YYYY-MM-DD",
			Error:   err.Error(),
		})
	}
	to := from
	if req.ToDate != "" {
		to, err = utils.ParseDate(req.ToDate)
		if err != nil || to.Before(from) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "Invalid to date",
			})
		}
	}

	// Whole-day exclusions use the 00:00-00:00 sentinel.
	startTime, endTime := "00:00", "00:00"
	if req.StartTime != "" || req.EndTime != "" {
		iv, err := scheduling.NewInterval(req.StartTime, req.EndTime)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "Invalid exclusion window",
				Error:   err.Error(),
			})
		}
		startTime, endTime = iv.StartClock(), iv.EndClock()
	}

	reason := req.Reason
	if reason == "" {
		reason = "Excluded"
	}

	excluded := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		override := models.ProviderAvailability{
			ProviderProfileID: profile.ID,
			Date:              d,
			StartTime:         startTime,
			EndTime:           endTime,
			IsAvailable:       false,
			Reason:            reason,
		}
		if err := db.DB.Create(&override).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to exclude dates",
				Error:   err.Error(),
			})
		}
		excluded++
	}

	redis.InvalidateProvider(profile.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Dates excluded successfully!",
		"excluded": excluded,
	})
}

// RemoveAvailability deletes one override owned by the provider.
func RemoveAvailability(c *fiber.Ctx) error {
	profile, err := ownProfile(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
			Error:   err.Error(),
		})
	}

	var override models.ProviderAvailability
	if err := db.DB.Where("provider_profile_id = ?", profile.ID).
		First(&override, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Availability record not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Delete(&override).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to remove availability",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProvider(profile.ID)

	return c.SendStatus(fiber.StatusNoContent)
}

// GetMonthAvailability lists the provider's own overrides for a month.
func GetMonthAvailability(c *fiber.Ctx) error {
	profile, err := ownProfile(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
			Error:   err.Error(),
		})
	}

	year, month, err := parseYearMonth(c.Query("year"), c.Query("month"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid month query",
			Error:   err.Error(),
		})
	}

	loc := utils.ClinicLocation()
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	var overrides []models.ProviderAvailability
	if err := db.DB.
		Where("provider_profile_id = ? AND date BETWEEN ? AND ?",
			profile.ID, first.Format("2006-01-02"), last.Format("2006-01-02")).
		Order("date").Order("start_time").
		Find(&overrides).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"availability": overrides,
		"year":         year,
		"month":        month,
	})
}

// overlapsDayWindows reports whether a new added window would collide
// with the weekday template or another added window on the same date.
// Overlapping availability sources would let the resolver offer offset
// slot pairs that the booking uniqueness index cannot tell apart.
func overlapsDayWindows(profileID uint, date time.Time, iv scheduling.Interval) (bool, error) {
	var schedules []models.ProviderSchedule
	if err := db.DB.
		Where("provider_profile_id = ? AND day_of_week = ? AND is_active = ?",
			profileID, int(date.Weekday()), true).
		Find(&schedules).Error; err != nil {
		return false, err
	}
	for _, s := range schedules {
		w, err := scheduling.NewInterval(s.StartTime, s.EndTime)
		if err != nil {
			continue
		}
		if iv.Overlaps(w) {
			return true, nil
		}
	}

	var added []models.ProviderAvailability
	if err := db.DB.
		Where("provider_profile_id = ? AND date = ? AND is_available = ?",
			profileID, date.Format("2006-01-02"), true).
		Find(&added).Error; err != nil {
		return false, err
	}
	for _, o := range added {
		w, err := scheduling.NewInterval(o.StartTime, o.EndTime)
		if err != nil {
			continue
		}
		if iv.Overlaps(w) {
			return true, nil
		}
	}
	return false, nil
}

// buildOverride validates a single availability request into a model
// row.
func buildOverride(profileID uint, req *availabilityRequest, available bool) (*models.ProviderAvailability, *utils.ErrorResponse) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, &utils.ErrorResponse{Message: "Invalid date, use YYYY-MM-DD", Error: err.Error()}
	}
	iv, err := scheduling.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, &utils.ErrorResponse{Message: "Invalid time window", Error: err.Error()}
	}
	return &models.ProviderAvailability{
		ProviderProfileID: profileID,
		Date:              date,
		StartTime:         iv.StartClock(),
		EndTime:           iv.EndClock(),
		IsAvailable:       available,
		Reason:            req.Reason,
	}, nil
}
