package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lunamistica/tarot_platform/database"
	"github.com/lunamistica/tarot_platform/models"
	"gorm.io/gorm"
)

type TarotistaApplicationRequest struct {
	Headline        string `json:"headline" validate:"required"`
	Bio             string `json:"bio" validate:"required"`
	Specialties     string `json:"specialties,omitempty"`
	YearsExperience int    `json:"years_experience" validate:"omitempty,min=0,max=80"`
}

func ApplyToBeTarotista(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req TarotistaApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.Tarotista
	err := database.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already submitted an application."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	application := models.Tarotista{
		UserID:          userID,
		Headline:        &req.Headline,
		Bio:             &req.Bio,
		YearsExperience: req.YearsExperience,
	}
	if req.Specialties != "" {
		application.Specialties = &req.Specialties
	}

	if err := database.DB.Create(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create application"})
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

func ListActiveTarotistas(c *fiber.Ctx) error {
	var tarotistas []models.Tarotista
	if err := database.DB.Preload("User").Where("status = ?", "active").Find(&tarotistas).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(tarotistas)
}

func GetTarotistaProfile(c *fiber.Ctx) error {
	tarotistaID := c.Params("tarotistaId")

	var tarotista models.Tarotista
	err := database.DB.Preload("User").
		Where("user_id = ? AND status = ?", tarotistaID, "active").
		First(&tarotista).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tarotista not found"})
	}
	return c.JSON(tarotista)
}

func GetMyTarotistaProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var tarotista models.Tarotista
	if err := database.DB.Preload("User").Where("user_id = ?", userID).First(&tarotista).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tarotista profile not found"})
	}
	return c.JSON(tarotista)
}

type UpdateTarotistaProfileRequest struct {
	Headline        *string `json:"headline"`
	Bio             *string `json:"bio"`
	Specialties     *string `json:"specialties"`
	YearsExperience *int    `json:"years_experience" validate:"omitempty,min=0,max=80"`
}

func UpdateMyTarotistaProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req UpdateTarotistaProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var tarotista models.Tarotista
	if err := database.DB.Where("user_id = ?", userID).First(&tarotista).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tarotista profile not found"})
	}

	if req.Headline != nil {
		tarotista.Headline = req.Headline
	}
	if req.Bio != nil {
		tarotista.Bio = req.Bio
	}
	if req.Specialties != nil {
		tarotista.Specialties = req.Specialties
	}
	if req.YearsExperience != nil {
		tarotista.YearsExperience = *req.YearsExperience
	}

	if err := database.DB.Save(&tarotista).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	return c.JSON(tarotista)
}
