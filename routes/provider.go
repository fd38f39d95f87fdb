package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahtee/clinic-booking/controllers"
)

// SetupProviderRoutes configures the public provider browsing surface.
// No authentication: patients check availability before signing in.
func SetupProviderRoutes(app *fiber.App) {
	providers := app.Group("/providers")
	providers.Get("/", controllers.GetAllProviders)
	providers.Get("/:id", controllers.GetProviderDetails)
	providers.Get("/:id/slots", controllers.GetProviderSlots)
	providers.Get("/:id/available-dates", controllers.GetProviderAvailableDates)
}
