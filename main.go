package main

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/sahtee/clinic-booking/cron"
	"github.com/sahtee/clinic-booking/db"
	"github.com/sahtee/clinic-booking/redis"
	"github.com/sahtee/clinic-booking/routes"
)

func main() {
	app := fiber.New()

	db.Init()
	db.Migrate()
	db.SeedRBAC()
	if os.Getenv("SEED_DEMO") == "true" {
		db.SeedDemo()
	}

	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Clinic booking API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupRBACRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupScheduleRoutes(app)
	routes.SetupChildrenRoutes(app)

	app.Listen(":8000")
}
