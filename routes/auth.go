package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookwell/bookwell-api/controllers"
	"github.com/bookwell/bookwell-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
}
