package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SetWeeklyAvailabilityRequest struct {
	DayOfWeek *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
}

// SetWeeklyAvailability upserts one recurring window for the
// authenticated tarotista.
func SetWeeklyAvailability(c *fiber.Ctx) error {
	tarotistaID := currentUserID(c)

	var req SetWeeklyAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rule, err := availabilitySvc.SetWeeklyAvailability(tarotistaID, *req.DayOfWeek, req.StartTime, req.EndTime)
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}

func GetMyWeeklyAvailability(c *fiber.Ctx) error {
	rules, err := availabilitySvc.WeeklyRules(currentUserID(c))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(rules)
}

func DisableWeeklyAvailability(c *fiber.Ctx) error {
	ruleID, err := uuid.Parse(c.Params("ruleId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rule id"})
	}

	if err := availabilitySvc.DisableWeeklyAvailability(currentUserID(c), ruleID); err != nil {
		return renderServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type SetExceptionRequest struct {
	ExceptionDate string  `json:"exception_date" validate:"required,datetime=2006-01-02"`
	ExceptionType string  `json:"exception_type" validate:"required,oneof=blocked custom_hours"`
	StartTime     *string `json:"start_time" validate:"omitempty,len=5"`
	EndTime       *string `json:"end_time" validate:"omitempty,len=5"`
	Reason        *string `json:"reason" validate:"omitempty,max=255"`
}

// SetException upserts the date override for the authenticated
// tarotista; one exception exists per calendar date.
func SetException(c *fiber.Ctx) error {
	tarotistaID := currentUserID(c)

	var req SetExceptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	exc, err := availabilitySvc.SetException(tarotistaID, req.ExceptionDate, req.ExceptionType, req.StartTime, req.EndTime, req.Reason)
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exc)
}

func GetMyExceptions(c *fiber.Ctx) error {
	excs, err := availabilitySvc.Exceptions(currentUserID(c))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(excs)
}

// GetTarotistaSlots is the public slot query: free slots for a tarotista
// over a date range at a fixed duration.
func GetTarotistaSlots(c *fiber.Ctx) error {
	tarotistaID, err := uuid.Parse(c.Params("tarotistaId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tarotista id"})
	}

	type slotQuery struct {
		StartDate       string `query:"start_date" validate:"required,datetime=2006-01-02"`
		EndDate         string `query:"end_date" validate:"required,datetime=2006-01-02"`
		DurationMinutes int    `query:"duration_minutes" validate:"required,oneof=30 60 90"`
	}
	var q slotQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse query parameters"})
	}
	if err := validate.Struct(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slots, err := availabilitySvc.AvailableSlots(tarotistaID, q.StartDate, q.EndDate, q.DurationMinutes)
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(slots)
}
