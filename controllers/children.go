package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahtee/clinic-booking/db"
	"github.com/sahtee/clinic-booking/models"
	"github.com/sahtee/clinic-booking/utils"
)

type childRequest struct {
	Name         string `json:"name"`
	DateOfBirth  string `json:"date_of_birth"`
	Gender       string `json:"gender"`
	MedicalNotes string `json:"medical_notes"`
}

// GetChildren lists the authenticated user's children.
func GetChildren(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User not found in context",
		})
	}

	var children []models.Child
	if err := db.DB.Where("user_id = ?", userID).Order("name").Find(&children).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch children",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"children": children})
}

// CreateChild adds a child profile under the authenticated user.
func CreateChild(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User not found in context",
		})
	}

	req := new(childRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Child name is required",
		})
	}
	dob, err := utils.ParseDate(req.DateOfBirth)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid date of birth, use YYYY-MM-DD",
			Error:   err.Error(),
		})
	}
	if dob.After(utils.ClinicNow()) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Date of birth cannot be in the future",
		})
	}

	child := models.Child{
		UserID:       userID,
		Name:         req.Name,
		DateOfBirth:  dob,
		Gender:       req.Gender,
		MedicalNotes: req.MedicalNotes,
	}
	if err := db.DB.Create(&child).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create child",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Child added successfully!",
		"child":   child,
	})
}

// UpdateChild edits a child profile owned by the authenticated user.
func UpdateChild(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User not found in context",
		})
	}

	var child models.Child
	if err := db.DB.First(&child, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Child not found",
			Error:   err.Error(),
		})
	}
	if !child.BelongsTo(userID) {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You can only edit your own children",
		})
	}

	req := new(childRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if req.Name != "" {
		child.Name = req.Name
	}
	if req.DateOfBirth != "" {
		dob, err := utils.ParseDate(req.DateOfBirth)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "Invalid date of birth, use YYYY-MM-DD",
				Error:   err.Error(),
			})
		}
		child.DateOfBirth = dob
	}
	if req.Gender != "" {
		child.Gender = req.Gender
	}
	if req.MedicalNotes != "" {
		child.MedicalNotes = req.MedicalNotes
	}

	if err := db.DB.Save(&child).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update child",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Child updated successfully!",
		"child":   child,
	})
}

// DeleteChild removes a child profile owned by the authenticated user.
func DeleteChild(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User not found in context",
		})
	}

	var child models.Child
	if err := db.DB.First(&child, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Child not found",
			Error:   err.Error(),
		})
	}
	if !child.BelongsTo(userID) {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You can only delete your own children",
		})
	}

	if err := db.DB.Delete(&child).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete child",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
