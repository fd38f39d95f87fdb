package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahtee/clinic-booking/controllers"
	"github.com/sahtee/clinic-booking/middleware"
	"github.com/sahtee/clinic-booking/models"
)

// SetupScheduleRoutes configures the provider-side scheduling surface:
// the weekly template, date overrides and the profile itself.
func SetupScheduleRoutes(app *fiber.App) {
	provider := app.Group("/provider", middleware.Protected(), middleware.RequireCapability(models.CapBookSys))

	provider.Post("/profile", controllers.UpsertProviderProfile)
	provider.Patch("/profile/availability", controllers.SetProviderAvailability)

	provider.Get("/schedule", controllers.GetSchedule)
	provider.Post("/schedule/bulk", controllers.BulkUpdateSchedule)
	provider.Put("/schedule/bulk", controllers.BulkUpdateSchedule) // alias

	provider.Get("/availability", controllers.GetMonthAvailability)
	provider.Post("/availability", controllers.AddAvailability)
	provider.Post("/availability/bulk", controllers.BulkAddAvailability)
	provider.Post("/availability/exclude", controllers.ExcludeDates)
	provider.Delete("/availability/:id", controllers.RemoveAvailability)
}
