package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lunamistica/tarot_platform/database"
	"github.com/lunamistica/tarot_platform/models"
)

func GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=3"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	TimeZone  *string `json:"time_zone"`
}

func UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.BirthDate != nil {
		user.BirthDate = req.BirthDate
	}
	if req.TimeZone != nil {
		user.TimeZone = req.TimeZone
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	return c.JSON(user)
}
