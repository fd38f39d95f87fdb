package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahtee/clinic-booking/controllers"
	"github.com/sahtee/clinic-booking/middleware"
	"github.com/sahtee/clinic-booking/models"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())
	appointment.Get("/", controllers.GetAllAppointments)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Post("/", middleware.RequireCapability(models.CapCanBook), controllers.CreateAppointment)
	appointment.Post("/:id/status", middleware.RequireCapability(models.CapBookSys), controllers.UpdateAppointmentStatus)
	appointment.Post("/:id/cancel", middleware.RequireCapability(models.CapCanBook), controllers.CancelAppointment)
	// PATCH aliases for clients that treat transitions as partial updates.
	appointment.Patch("/:id/status", middleware.RequireCapability(models.CapBookSys), controllers.UpdateAppointmentStatus)
	appointment.Patch("/:id/cancel", middleware.RequireCapability(models.CapCanBook), controllers.CancelAppointment)
	appointment.Delete("/:id", middleware.RequireCapability(models.CapManageBookings), controllers.DeleteAppointment)
}
