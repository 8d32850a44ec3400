package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lunamistica/tarot_platform/handlers"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/tarotistas", handlers.ListActiveTarotistas)
	api.Get("/tarotistas/:tarotistaId", handlers.GetTarotistaProfile)
	api.Get("/tarotistas/:tarotistaId/slots", handlers.GetTarotistaSlots)
}
