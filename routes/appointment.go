package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookwell/bookwell-api/controllers"
	"github.com/bookwell/bookwell-api/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/api/appointments", middleware.Protected())

	// User routes
	appointment.Post("/book", controllers.BookAppointment)
	appointment.Get("/my-appointments", controllers.GetMyAppointments)
	appointment.Put("/cancel/:id", controllers.CancelAppointment)

	// Provider routes
	appointment.Get("/provider-appointments", middleware.RequireProvider(), controllers.GetProviderAppointments)
	appointment.Put("/update-status/:id", middleware.RequireProvider(), controllers.UpdateAppointmentStatus)
}
