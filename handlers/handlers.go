package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/lunamistica/tarot_platform/configs"
	"github.com/lunamistica/tarot_platform/database"
	"github.com/lunamistica/tarot_platform/services"
	"github.com/lunamistica/tarot_platform/utils"
)

var validate = validator.New()

var (
	availabilitySvc   *services.AvailabilityService
	sessionSvc        *services.SessionService
	interpretationSvc *services.InterpretationService
)

// InitServices wires the service layer onto the shared database handle.
// Called from main after ConnectDB.
func InitServices() {
	availabilityStore := services.NewAvailabilityStore(database.DB)
	sessionStore := services.NewSessionStore(database.DB)

	availabilitySvc = services.NewAvailabilityService(availabilityStore, sessionStore)
	sessionSvc = services.NewSessionService(sessionStore, availabilitySvc, services.PricingFromConfig(), utils.GenerateMeetingLink)

	ttlHours := 24
	if parsed, err := strconv.Atoi(config.Config("INTERPRETATION_CACHE_TTL_HOURS")); err == nil && parsed > 0 {
		ttlHours = parsed
	}
	interpretationSvc = services.NewInterpretationService(
		services.NewInterpretationStore(database.DB),
		services.TemplateInterpreter{},
		time.Duration(ttlHours)*time.Hour,
	)

	log.Println("✅ Services initialized")
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

func currentUserEmail(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email, _ := claims["email"].(string)
	return email
}

// renderServiceError maps the service error taxonomy onto HTTP statuses.
// Anything untyped is a 500 and gets logged with its real cause.
func renderServiceError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var forbiddenErr *services.ForbiddenError
	var conflictErr *services.ConflictError
	var stateErr *services.StateError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Message})
	case errors.As(err, &forbiddenErr):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": forbiddenErr.Message})
	case errors.As(err, &conflictErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflictErr.Message})
	case errors.As(err, &stateErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": stateErr.Message})
	}

	log.Printf("🔥 Unexpected service error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
