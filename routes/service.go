package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookwell/bookwell-api/controllers"
	"github.com/bookwell/bookwell-api/middleware"
)

// SetupServiceRoutes configures all service related routes
func SetupServiceRoutes(app *fiber.App) {
	service := app.Group("/api/services")

	service.Get("/", controllers.GetAllServices)
	service.Get("/my-services", middleware.Protected(), middleware.RequireProvider(), controllers.GetMyServices)
	service.Post("/", middleware.Protected(), middleware.RequireProvider(), controllers.CreateService)
	service.Put("/:id", middleware.Protected(), middleware.RequireProvider(), controllers.UpdateService)
	service.Delete("/:id", middleware.Protected(), middleware.RequireProvider(), controllers.DeleteService)
}
