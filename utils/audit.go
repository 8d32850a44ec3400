package utils

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/lunamistica/tarot_platform/database"
	"github.com/lunamistica/tarot_platform/models"
)

// Audit records who did what to which resource. Failures are logged and
// swallowed: an audit write must never fail the request it describes.
func Audit(c *fiber.Ctx, action, resourceType, resourceID, details string) {
	var actorID uuid.UUID
	var actorRole string
	if token, ok := c.Locals("user").(*jwt.Token); ok {
		claims := token.Claims.(jwt.MapClaims)
		if id, ok := claims["user_id"].(string); ok {
			actorID, _ = uuid.Parse(id)
		}
		if role, ok := claims["role"].(string); ok {
			actorRole = role
		}
	}

	entry := models.AuditLog{
		ActorID:      actorID,
		ActorRole:    actorRole,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		IPAddress:    c.IP(),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to write audit log entry for action %s: %v", action, err)
	}
}
