package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahtee/clinic-booking/controllers"
	"github.com/sahtee/clinic-booking/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/register", controllers.Register)
	auth.Post("/verify-otp", controllers.VerifyOTP)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/avatar", middleware.Protected(), controllers.UploadAvatar)
}
