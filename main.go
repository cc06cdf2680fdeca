package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/bookwell/bookwell-api/cache"
	"github.com/bookwell/bookwell-api/cron"
	"github.com/bookwell/bookwell-api/db"
	"github.com/bookwell/bookwell-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	cache.Init()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupAvailabilityRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupReportRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
