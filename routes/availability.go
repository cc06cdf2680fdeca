package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookwell/bookwell-api/controllers"
	"github.com/bookwell/bookwell-api/middleware"
)

// SetupAvailabilityRoutes configures schedule and slot routes
func SetupAvailabilityRoutes(app *fiber.App) {
	availability := app.Group("/api/availability")

	// Slot lookup is public: clients browse before authenticating.
	availability.Get("/available-slots", controllers.GetAvailableSlots)

	availability.Post("/set", middleware.Protected(), middleware.RequireProvider(), controllers.SetAvailability)
	availability.Post("/block-date", middleware.Protected(), middleware.RequireProvider(), controllers.BlockDate)
	availability.Get("/my-availability", middleware.Protected(), middleware.RequireProvider(), controllers.GetMyAvailability)
}
