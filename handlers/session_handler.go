package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lunamistica/tarot_platform/services"
	"github.com/lunamistica/tarot_platform/utils"
)

type BookSessionRequest struct {
	TarotistaID     string  `json:"tarotista_id" validate:"required,uuid"`
	SessionDate     string  `json:"session_date" validate:"required,datetime=2006-01-02"`
	SessionTime     string  `json:"session_time" validate:"required,len=5"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,oneof=30 60 90"`
	SessionType     string  `json:"session_type" validate:"required,oneof=general love career spiritual"`
	UserNotes       *string `json:"user_notes" validate:"omitempty,max=2000"`
}

func BookSession(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req BookSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	tarotistaID, _ := uuid.Parse(req.TarotistaID)

	sess, err := sessionSvc.Book(userID, currentUserEmail(c), services.BookSessionInput{
		TarotistaID:     tarotistaID,
		SessionDate:     req.SessionDate,
		SessionTime:     req.SessionTime,
		DurationMinutes: req.DurationMinutes,
		SessionType:     req.SessionType,
		UserNotes:       req.UserNotes,
	})
	if err != nil {
		return renderServiceError(c, err)
	}

	utils.Audit(c, "session.book", "session", sess.ID.String(),
		fmt.Sprintf("booked %s %s (%d min) with tarotista %s", sess.SessionDate, sess.SessionTime, sess.DurationMinutes, sess.TarotistaID))

	return c.Status(fiber.StatusCreated).JSON(sess)
}

func GetMySessions(c *fiber.Ctx) error {
	sessions, err := sessionSvc.ListByUser(currentUserID(c), c.Query("status"))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(sessions)
}

func GetMyTarotistaSessions(c *fiber.Ctx) error {
	sessions, err := sessionSvc.ListByTarotista(currentUserID(c), c.Query("status"))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(sessions)
}

type ConfirmSessionRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

func ConfirmSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req ConfirmSessionRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess, err := sessionSvc.Confirm(currentUserID(c), sessionID, req.Notes)
	if err != nil {
		return renderServiceError(c, err)
	}

	utils.Audit(c, "session.confirm", "session", sess.ID.String(), "session confirmed")
	return c.JSON(sess)
}

type CancelSessionRequest struct {
	Reason string `json:"reason" validate:"required,max=255"`
}

func CancelSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req CancelSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess, err := sessionSvc.Cancel(sessionID, currentUserID(c), req.Reason)
	if err != nil {
		return renderServiceError(c, err)
	}

	utils.Audit(c, "session.cancel", "session", sess.ID.String(), "reason: "+req.Reason)
	return c.JSON(sess)
}

func CompleteSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	sess, err := sessionSvc.Complete(currentUserID(c), sessionID)
	if err != nil {
		return renderServiceError(c, err)
	}

	utils.Audit(c, "session.complete", "session", sess.ID.String(), "session completed")
	return c.JSON(sess)
}
