package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/sahtee/clinic-booking/db"
	"github.com/sahtee/clinic-booking/models"
	"github.com/sahtee/clinic-booking/redis"
	"github.com/sahtee/clinic-booking/utils"
)

type providerProfileRequest struct {
	Specialization     string  `json:"specialization"`
	Bio                string  `json:"bio"`
	Title              string  `json:"title"`
	YearsExperience    int     `json:"years_experience"`
	SlotDuration       int     `json:"slot_duration"`
	ConsultationFee    float64 `json:"consultation_fee"`
	AdvanceBookingDays int     `json:"advance_booking_days"`
	Province           string  `json:"province"`
	City               string  `json:"city"`
	ClinicName         string  `json:"clinic_name"`
	OfficeAddress      string  `json:"office_address"`
}

// UpsertProviderProfile creates or updates the authenticated provider's
// profile.
func UpsertProviderProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User not found in context",
		})
	}

	req := new(providerProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if req.SlotDuration < 0 || req.SlotDuration > 240 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Slot duration must be between 0 and 240 minutes",
		})
	}

	var profile models.ProviderProfile
	created := false
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		profile = models.ProviderProfile{UserID: userID, IsAvailable: true}
		created = true
	}

	profile.Specialization = req.Specialization
	profile.Bio = req.Bio
	profile.Title = req.Title
	profile.YearsExperience = req.YearsExperience
	if req.SlotDuration > 0 {
		profile.SlotDuration = req.SlotDuration
	}
	profile.ConsultationFee = req.ConsultationFee
	if req.AdvanceBookingDays > 0 {
		profile.AdvanceBookingDays = req.AdvanceBookingDays
	}
	profile.Province = req.Province
	profile.City = req.City
	profile.ClinicName = req.ClinicName
	profile.OfficeAddress = req.OfficeAddress

	if err := db.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save provider profile",
			Error:   err.Error(),
		})
	}

	if !created {
		redis.InvalidateProvider(profile.ID)
	}

	status := fiber.StatusOK
	message := "Profile updated successfully!"
	if created {
		status = fiber.StatusCreated
		message = "Profile created successfully!"
	}

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"profile": profile,
	})
}

// SetProviderAvailability toggles whether the provider accepts new
// bookings at all. Existing appointments are untouched.
func SetProviderAvailability(c *fiber.Ctx) error {
	profile, err := ownProfile(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
			Error:   err.Error(),
		})
	}

	type toggleRequest struct {
		IsAvailable *bool `json:"is_available"`
	}
	req := new(toggleRequest)
	if err := c.BodyParser(req); err != nil || req.IsAvailable == nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "is_available is required",
		})
	}

	if err := db.DB.Model(profile).Update("is_available", *req.IsAvailable).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update availability",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProvider(profile.ID)

	return c.JSON(fiber.Map{
		"success":      true,
		"is_available": *req.IsAvailable,
	})
}

// UploadAvatar stores a profile image on Cloudinary and saves the URL
// on the user row.
func UploadAvatar(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User not found in context",
		})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Avatar file is required",
			Error:   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadToCloudinary(file, fmt.Sprintf("user-%d", userID), "avatars")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload avatar",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("avatar", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save avatar",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"avatar":  url,
	})
}
