package routes

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

// Lifecycle transitions and the weekly bulk replace are POST endpoints;
// the PATCH/PUT forms are aliases.
func TestBookingRouteMethods(t *testing.T) {
	app := fiber.New()
	SetupAppointmentRoutes(app)
	SetupScheduleRoutes(app)

	registered := map[string]bool{}
	for _, r := range app.GetRoutes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"POST /appointments/:id/cancel",
		"POST /appointments/:id/status",
		"POST /provider/schedule/bulk",
		"PATCH /appointments/:id/cancel",
		"PATCH /appointments/:id/status",
		"PUT /provider/schedule/bulk",
		"DELETE /appointments/:id",
	}
	for _, w := range want {
		if !registered[w] {
			t.Errorf("route %q not registered", w)
		}
	}
}
