package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahtee/clinic-booking/db"
	"github.com/sahtee/clinic-booking/models"
	"github.com/sahtee/clinic-booking/utils"
)

// CreateRole adds a named role. Capabilities are granted separately
// through GrantCapability.
func CreateRole(c *fiber.Ctx) error {
	type roleRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	req := new(roleRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Role name is required",
		})
	}

	var existing models.Role
	if db.DB.Where("name = ?", req.Name).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Role with this name already exists",
		})
	}

	role := models.Role{Name: req.Name, Description: req.Description}
	if err := db.DB.Create(&role).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create role",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(role)
}

// ListRoles returns every role with its granted capabilities.
func ListRoles(c *fiber.Ctx) error {
	var roles []models.Role
	if err := db.DB.Preload("Permissions").Order("name").Find(&roles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch roles",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"roles": roles})
}

// CreateCapability adds a named capability, e.g. "can-book". Only the
// name is meaningful for gating; description is for humans.
func CreateCapability(c *fiber.Ctx) error {
	capability := new(models.Permission)
	if err := c.BodyParser(capability); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if capability.Name == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Capability name is required",
		})
	}

	var existing models.Permission
	if db.DB.Where("name = ?", capability.Name).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Capability with this name already exists",
		})
	}

	if err := db.DB.Create(capability).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create capability",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(capability)
}

// ListCapabilities returns every capability.
func ListCapabilities(c *fiber.Ctx) error {
	var capabilities []models.Permission
	if err := db.DB.Order("name").Find(&capabilities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch capabilities",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"capabilities": capabilities})
}

// AssignRole moves a user onto a role, replacing their previous one.
// This is how a registered patient becomes a provider or admin.
func AssignRole(c *fiber.Ctx) error {
	type assignRequest struct {
		UserID uint `json:"user_id"`
		RoleID uint `json:"role_id"`
	}
	req := new(assignRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var user models.User
	if err := db.DB.First(&user, req.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}
	var role models.Role
	if err := db.DB.First(&role, req.RoleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Role not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&user).Update("role_id", role.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to assign role",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Role assigned successfully!",
	})
}

// GrantCapability grants a capability, by name, to a role.
func GrantCapability(c *fiber.Ctx) error {
	type grantRequest struct {
		RoleID     uint   `json:"role_id"`
		Capability string `json:"capability"`
	}
	req := new(grantRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if req.Capability == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Capability name is required",
		})
	}

	var role models.Role
	if err := db.DB.Preload("Permissions").First(&role, req.RoleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Role not found",
			Error:   err.Error(),
		})
	}
	if role.HasCapability(req.Capability) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Role already carries this capability",
		})
	}

	var capability models.Permission
	if err := db.DB.Where("name = ?", req.Capability).First(&capability).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Capability not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&role).Association("Permissions").Append(&capability); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to grant capability",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Capability granted successfully!",
	})
}
