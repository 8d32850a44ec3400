package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type CreateReadingRequest struct {
	SpreadType string   `json:"spread_type" validate:"required,oneof=single_card three_card celtic_cross"`
	Question   string   `json:"question" validate:"required,min=3,max=1000"`
	Cards      []string `json:"cards" validate:"required,min=1,max=10,dive,required"`
}

func CreateReading(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateReadingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	reading, err := interpretationSvc.CreateReading(userID, req.SpreadType, req.Question, req.Cards)
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reading)
}

func GetMyReadings(c *fiber.Ctx) error {
	readings, err := interpretationSvc.History(currentUserID(c))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(readings)
}
