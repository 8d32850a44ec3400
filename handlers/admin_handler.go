package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lunamistica/tarot_platform/database"
	"github.com/lunamistica/tarot_platform/models"
	"github.com/lunamistica/tarot_platform/utils"
	"gorm.io/gorm"
)

func ListPendingApplications(c *fiber.Ctx) error {
	var pending []models.Tarotista
	if err := database.DB.Preload("User").Where("status = ?", "pending").Find(&pending).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pending)
}

type ManageApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=active rejected"`
}

// ManageApplication approves or rejects a tarotista application. On
// approval the user's role flips so the guard middleware lets them in.
func ManageApplication(c *fiber.Ctx) error {
	var req ManageApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tarotistaUserID := c.Params("tarotistaId")

	var application models.Tarotista
	if err := database.DB.Where("user_id = ?", tarotistaUserID).First(&application).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}
	var user models.User
	if err := database.DB.Where("id = ?", tarotistaUserID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Associated user not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		application.Status = req.Status
		if err := tx.Save(&application).Error; err != nil {
			return err
		}
		if req.Status == "active" {
			user.Role = "tarotist"
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application status"})
	}

	utils.Audit(c, "tarotista.application."+req.Status, "tarotista", tarotistaUserID, "application reviewed")
	return c.JSON(fiber.Map{"message": "Application status updated successfully"})
}

func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(users)
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = !user.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	action := "user.deactivate"
	if user.IsActive {
		action = "user.activate"
	}
	utils.Audit(c, action, "user", user.ID.String(), "")
	return c.JSON(user)
}

func AdminGetAllSessions(c *fiber.Ctx) error {
	query := database.DB.Preload("User").Preload("Tarotista").
		Order("session_date desc, session_time desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var sessions []models.Session
	if err := query.Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(sessions)
}

func GetAuditLogs(c *fiber.Ctx) error {
	query := database.DB.Order("created_at desc").Limit(500)
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(logs)
}
