package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lunamistica/tarot_platform/handlers"
	"github.com/lunamistica/tarot_platform/middleware"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions", middleware.Protected())
	sessions.Get("/me", handlers.GetMySessions)
	sessions.Post("", handlers.BookSession)
	sessions.Post("/:sessionId/cancel", handlers.CancelSession)

	sessions.Use("/:sessionId/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	sessions.Get("/:sessionId/ws", websocket.New(handlers.ServeSessionWs))
}
