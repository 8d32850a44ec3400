package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lunamistica/tarot_platform/handlers"
	"github.com/lunamistica/tarot_platform/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("/me", handlers.GetMyProfile)
	profile.Put("/me", handlers.UpdateMyProfile)
}
