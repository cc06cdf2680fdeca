package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookwell/bookwell-api/controllers"
	"github.com/bookwell/bookwell-api/middleware"
)

// SetupReportRoutes configures report and dashboard routes
func SetupReportRoutes(app *fiber.App) {
	reports := app.Group("/api/reports", middleware.Protected())
	reports.Get("/provider", middleware.RequireProvider(), controllers.GetProviderReports)
	reports.Get("/user", controllers.GetUserReports)

	dashboard := app.Group("/api/dashboard", middleware.Protected())
	dashboard.Get("/provider", middleware.RequireProvider(), controllers.GetProviderDashboard)
	dashboard.Get("/provider/trends", middleware.RequireProvider(), controllers.GetProviderTrends)
	dashboard.Get("/user", controllers.GetUserDashboard)
}
