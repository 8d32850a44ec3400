package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lunamistica/tarot_platform/handlers"
	"github.com/lunamistica/tarot_platform/middleware"
)

func TarotistaRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tarotista := api.Group("/tarotista", middleware.Protected())
	tarotista.Post("/apply", handlers.ApplyToBeTarotista)

	profile := tarotista.Group("/profile", middleware.TarotistaRequired())
	profile.Get("/me", handlers.GetMyTarotistaProfile)
	profile.Put("/me", handlers.UpdateMyTarotistaProfile)

	availability := tarotista.Group("/availability", middleware.TarotistaRequired())
	availability.Post("/weekly", handlers.SetWeeklyAvailability)
	availability.Get("/weekly", handlers.GetMyWeeklyAvailability)
	availability.Delete("/weekly/:ruleId", handlers.DisableWeeklyAvailability)
	availability.Post("/exceptions", handlers.SetException)
	availability.Get("/exceptions", handlers.GetMyExceptions)

	sessions := tarotista.Group("/sessions", middleware.TarotistaRequired())
	sessions.Get("", handlers.GetMyTarotistaSessions)
	sessions.Post("/:sessionId/confirm", handlers.ConfirmSession)
	sessions.Post("/:sessionId/complete", handlers.CompleteSession)
}
