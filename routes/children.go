package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahtee/clinic-booking/controllers"
	"github.com/sahtee/clinic-booking/middleware"
	"github.com/sahtee/clinic-booking/models"
)

// SetupChildrenRoutes configures child profile management for booking
// users.
func SetupChildrenRoutes(app *fiber.App) {
	children := app.Group("/children", middleware.Protected(), middleware.RequireCapability(models.CapCanBook))
	children.Get("/", controllers.GetChildren)
	children.Post("/", controllers.CreateChild)
	children.Put("/:id", controllers.UpdateChild)
	children.Delete("/:id", controllers.DeleteChild)
}
