package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sahtee/clinic-booking/db"
	"github.com/sahtee/clinic-booking/models"
	"github.com/sahtee/clinic-booking/utils"
)

// GetAllProviders returns available provider profiles, optionally
// filtered by city, specialization or a free-text search on the name.
func GetAllProviders(c *fiber.Ctx) error {
	var providers []models.ProviderProfile

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := db.DB.Model(&models.ProviderProfile{}).
		Preload("User").
		Where("is_available = ?", true)

	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if specialization := c.Query("specialization"); specialization != "" {
		query = query.Where("specialization = ?", specialization)
	}
	if search := c.Query("q"); search != "" {
		query = query.Joins("JOIN users ON users.id = provider_profiles.user_id").
			Where("users.name ILIKE ? OR provider_profiles.clinic_name ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var count int64
	query.Count(&count)

	if err := query.Limit(limit).Offset(offset).Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch providers",
			Error:   err.Error(),
		})
	}

	for i := range providers {
		providers[i].User.Password = ""
	}

	return c.JSON(fiber.Map{
		"providers": providers,
		"total":     count,
		"page":      page,
		"limit":     limit,
		"pages":     (int(count) + limit - 1) / limit,
	})
}

// GetProviderDetails returns one provider profile with its weekly
// schedule.
func GetProviderDetails(c *fiber.Ctx) error {
	id := c.Params("id")

	var profile models.ProviderProfile
	if err := db.DB.Preload("User").Preload("Schedules", "is_active = ?", true).
		First(&profile, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
			Error:   err.Error(),
		})
	}

	profile.User.Password = ""

	return c.JSON(profile)
}

// GetProviderSlots returns the bookable slots for a provider on one
// date. Public: patients browse availability before authenticating.
func GetProviderSlots(c *fiber.Ctx) error {
	id := c.Params("id")

	var profile models.ProviderProfile
	if err := db.DB.First(&profile, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
			Error:   err.Error(),
		})
	}

	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid date format, use YYYY-MM-DD",
			Error:   err.Error(),
		})
	}

	slots, err := resolveProviderSlots(&profile, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute slots",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"provider_profile_id": profile.ID,
		"date":                date.Format("2006-01-02"),
		"day_name":            date.Weekday().String(),
		"slots":               toSlotResponses(slots),
	})
}

// GetProviderAvailableDates lists the dates of a month with at least
// one open slot.
func GetProviderAvailableDates(c *fiber.Ctx) error {
	id := c.Params("id")

	var profile models.ProviderProfile
	if err := db.DB.First(&profile, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
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

	dates, err := availableDatesForMonth(&profile, year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute available dates",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"provider_profile_id": profile.ID,
		"year":                year,
		"month":               month,
		"dates":               dates,
	})
}
