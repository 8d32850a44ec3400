package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lunamistica/tarot_platform/handlers"
	"github.com/lunamistica/tarot_platform/middleware"
)

func ReadingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	readings := api.Group("/readings", middleware.Protected())
	readings.Post("", handlers.CreateReading)
	readings.Get("/me", handlers.GetMyReadings)
}
