package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lunamistica/tarot_platform/handlers"
	"github.com/lunamistica/tarot_platform/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/applications/pending", handlers.ListPendingApplications)
	admin.Put("/applications/:tarotistaId", handlers.ManageApplication)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)

	admin.Get("/sessions", handlers.AdminGetAllSessions)
	admin.Get("/audit-logs", handlers.GetAuditLogs)
}
