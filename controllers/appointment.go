package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sahtee/clinic-booking/db"
	"github.com/sahtee/clinic-booking/models"
	"github.com/sahtee/clinic-booking/redis"
	"github.com/sahtee/clinic-booking/scheduling"
	"github.com/sahtee/clinic-booking/utils"
)

type bookAppointmentRequest struct {
	ProviderProfileID uint   `json:"provider_profile_id"`
	ChildID           *uint  `json:"child_id"`
	AppointmentDate   string `json:"appointment_date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Notes             string `json:"notes"`
}

// CreateAppointment books a slot for the authenticated patient. The
// requested window must match one of the currently resolvable slots;
// the partial unique index on appointments settles races between
// concurrent bookers.
func CreateAppointment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	req := new(bookAppointmentRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	date, err := utils.ParseDate(req.AppointmentDate)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid appointment date, use YYYY-MM-DD",
			Error:   err.Error(),
		})
	}
	now := utils.ClinicNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Appointment date must not be in the past",
		})
	}

	interval, err := scheduling.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid time window",
			Error:   err.Error(),
		})
	}

	var profile models.ProviderProfile
	if err := db.DB.Preload("User").First(&profile, req.ProviderProfileID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
			Error:   err.Error(),
		})
	}
	if !profile.IsAvailable {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "This provider is currently unavailable.",
		})
	}

	// A child on the booking must belong to the booker.
	if req.ChildID != nil {
		var child models.Child
		if err := db.DB.First(&child, *req.ChildID).Error; err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "Child not found",
				Error:   err.Error(),
			})
		}
		if !child.BelongsTo(userID) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "Child does not belong to the booking user",
			})
		}
	}

	slots, err := resolveProviderSlots(&profile, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check availability",
			Error:   err.Error(),
		})
	}
	if !scheduling.MatchSlot(slots, interval) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This time slot is no longer available.",
		})
	}

	appointment := models.Appointment{
		UserID:            userID,
		ChildID:           req.ChildID,
		ProviderProfileID: profile.ID,
		AppointmentDate:   date,
		StartTime:         interval.StartClock(),
		EndTime:           interval.EndClock(),
		Status:            models.StatusPending,
		Notes:             req.Notes,
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		// A concurrent booker committed the same slot first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "This time slot is already booked.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProvider(profile.ID)

	db.DB.Preload("Child").Preload("ProviderProfile.User").First(&appointment, appointment.ID)
	sendBookingEmails(&appointment, &profile)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Appointment booked successfully!",
		"appointment": appointment,
	})
}

// GetAllAppointments lists appointments scoped to the caller: admins
// see everything, providers their own calendar, patients their own
// bookings. A statistics block mirrors the dashboard counters.
func GetAllAppointments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	user, profile, isAdmin, err := loadActor(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}

	query := db.DB.Model(&models.Appointment{}).
		Preload("Child").
		Preload("User").
		Preload("ProviderProfile.User")

	scope := func(q *gorm.DB) *gorm.DB {
		switch {
		case isAdmin:
			return q
		case profile != nil:
			return q.Where("provider_profile_id = ?", profile.ID)
		default:
			return q.Where("user_id = ?", user.ID)
		}
	}
	query = scope(query)

	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("date_from"); from != "" {
		query = query.Where("appointment_date >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		query = query.Where("appointment_date <= ?", to)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date desc").Order("start_time desc").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	count := func(where ...interface{}) int64 {
		var n int64
		q := scope(db.DB.Model(&models.Appointment{}))
		if len(where) > 0 {
			q = q.Where(where[0], where[1:]...)
		}
		q.Count(&n)
		return n
	}

	today := utils.ClinicNow().Format("2006-01-02")
	statistics := fiber.Map{
		"total":     count(),
		"pending":   count("status = ?", models.StatusPending),
		"confirmed": count("status = ?", models.StatusConfirmed),
		"completed": count("status = ?", models.StatusCompleted),
		"cancelled": count("status = ?", models.StatusCancelled),
		"no_show":   count("status = ?", models.StatusNoShow),
		"today":     count("appointment_date = ?", today),
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"statistics":   statistics,
		"is_admin":     isAdmin,
		"is_provider":  profile != nil,
	})
}

// GetAppointment shows one appointment to its patient, its provider or
// an admin.
func GetAppointment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Child").Preload("User").Preload("ProviderProfile.User").
		First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	user, profile, isAdmin, err := loadActor(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}

	isOwner := appointment.UserID == user.ID
	isProvider := profile != nil && appointment.ProviderProfileID == profile.ID
	if !isOwner && !isProvider && !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You are not allowed to view this appointment",
		})
	}

	return c.JSON(appointment)
}

type statusUpdateRequest struct {
	Status models.AppointmentStatus `json:"status"`
}

// UpdateAppointmentStatus applies a provider-side transition: confirm,
// complete or no_show. Patients cancel through CancelAppointment.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	req := new(statusUpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	switch req.Status {
	case models.StatusConfirmed, models.StatusCompleted, models.StatusNoShow:
	default:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Status must be one of confirmed, completed, no_show; got %q", req.Status),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	_, profile, isAdmin, err := loadActor(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}
	if !isAdmin && (profile == nil || appointment.ProviderProfileID != profile.ID) {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Only the appointment's provider may update its status",
		})
	}

	if err := appointment.UpdateStatus(db.DB, req.Status); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid status transition",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProvider(appointment.ProviderProfileID)

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Appointment status updated successfully!",
		"appointment": appointment,
	})
}

// CancelAppointment is the patient-side transition to cancelled.
// Admins may cancel on a patient's behalf.
func CancelAppointment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	user, _, isAdmin, err := loadActor(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}
	if !isAdmin && appointment.UserID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Only the booking patient may cancel this appointment",
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCancelled); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Cannot cancel this appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProvider(appointment.ProviderProfileID)

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Appointment cancelled successfully!",
		"appointment": appointment,
	})
}

// DeleteAppointment hard-removes an appointment. Admin only; the route
// is gated on the "manage bookings" capability.
func DeleteAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := db.DB.First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Unscoped().Delete(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProvider(appointment.ProviderProfileID)

	return c.SendStatus(fiber.StatusNoContent)
}

// loadActor resolves the acting user with role, capabilities and, when
// present, their provider profile.
func loadActor(userID uint) (*models.User, *models.ProviderProfile, bool, error) {
	var user models.User
	if err := db.DB.Preload("Role.Permissions").First(&user, userID).Error; err != nil {
		return nil, nil, false, err
	}

	var profile *models.ProviderProfile
	if user.Role.HasCapability(models.CapBookSys) {
		var p models.ProviderProfile
		if err := db.DB.Where("user_id = ?", user.ID).First(&p).Error; err == nil {
			profile = &p
		}
	}

	return &user, profile, user.Role.HasCapability(models.CapManageBookings), nil
}

func sendBookingEmails(appointment *models.Appointment, profile *models.ProviderProfile) {
	var patient models.User
	if err := db.DB.First(&patient, appointment.UserID).Error; err != nil {
		log.Printf("booking email: patient %d not found: %v", appointment.UserID, err)
		return
	}

	when := fmt.Sprintf("%s %s-%s",
		appointment.AppointmentDate.Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime)

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been booked and is awaiting confirmation.</p>
		<ul>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>When:</strong> %s</li>
			<li><strong>Reference:</strong> %s</li>
		</ul>
		<p>Best regards,<br>The Clinic Booking Team</p>
	`, patient.Name, profile.User.Name, when, appointment.Reference)
	if err := utils.SendEmail(patient.Email, "Appointment Booked", body); err != nil {
		log.Printf("booking email to patient failed: %v", err)
	}

	body = fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have a new appointment request.</p>
		<ul>
			<li><strong>Patient:</strong> %s</li>
			<li><strong>When:</strong> %s</li>
			<li><strong>Reference:</strong> %s</li>
		</ul>
		<p>Best regards,<br>The Clinic Booking Team</p>
	`, profile.User.Name, patient.Name, when, appointment.Reference)
	if err := utils.SendEmail(profile.User.Email, "New Appointment Request", body); err != nil {
		log.Printf("booking email to provider failed: %v", err)
	}
}
