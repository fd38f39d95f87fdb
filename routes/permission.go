package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahtee/clinic-booking/controllers"
	"github.com/sahtee/clinic-booking/middleware"
)

// SetupRBACRoutes configures role and capability management.
// Everything here is admin-only.
func SetupRBACRoutes(app *fiber.App) {
	rbac := app.Group("/rbac", middleware.Protected(), middleware.RequireRole("admin"))
	rbac.Post("/roles", controllers.CreateRole)
	rbac.Get("/roles", controllers.ListRoles)
	rbac.Post("/capabilities", controllers.CreateCapability)
	rbac.Get("/capabilities", controllers.ListCapabilities)
	rbac.Post("/assign-role", controllers.AssignRole)
	rbac.Post("/grant-capability", controllers.GrantCapability)
}
