package services

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	config "github.com/lunamistica/tarot_platform/configs"
	"github.com/lunamistica/tarot_platform/models"
)

var allowedSessionTypes = map[string]bool{
	"general":   true,
	"love":      true,
	"career":    true,
	"spiritual": true,
}

// PricingPolicy maps a session duration to its price in USD. The
// concrete rates live outside this core.
type PricingPolicy func(durationMinutes int) float64

// PricingFromConfig reads per-duration rates from the environment.
func PricingFromConfig() PricingPolicy {
	rates := map[int]float64{30: 20, 60: 35, 90: 50}
	for duration, fallback := range rates {
		key := "SESSION_PRICE_" + strconv.Itoa(duration)
		if parsed, err := strconv.ParseFloat(config.Config(key), 64); err == nil && parsed > 0 {
			rates[duration] = parsed
		} else {
			rates[duration] = fallback
		}
	}
	return func(durationMinutes int) float64 {
		return rates[durationMinutes]
	}
}

type BookSessionInput struct {
	TarotistaID     uuid.UUID
	SessionDate     string
	SessionTime     string
	DurationMinutes int
	SessionType     string
	UserNotes       *string
}

type SessionService struct {
	sessions     SessionStore
	availability *AvailabilityService
	pricing      PricingPolicy
	meetingLink  func() string
	now          func() time.Time
}

func NewSessionService(sessions SessionStore, availability *AvailabilityService, pricing PricingPolicy, meetingLink func() string) *SessionService {
	return &SessionService{
		sessions:     sessions,
		availability: availability,
		pricing:      pricing,
		meetingLink:  meetingLink,
		now:          time.Now,
	}
}

// Book validates the requested slot against the tarotista's effective
// availability, then hands the overlap check and insert to the store as
// one transactional unit. The created session starts as pending with
// payment pending.
func (s *SessionService) Book(userID uuid.UUID, userEmail string, in BookSessionInput) (*models.Session, error) {
	if !allowedDurations[in.DurationMinutes] {
		return nil, NewValidationError("duration_minutes must be 30, 60 or 90")
	}
	if !allowedSessionTypes[in.SessionType] {
		return nil, NewValidationError("unknown session_type %q", in.SessionType)
	}
	day, err := parseDate(in.SessionDate)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	start, err := parseClock(in.SessionTime)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}

	if !slotStartsAt(day, start).After(s.now()) {
		return nil, NewValidationError("session date and time must be in the future")
	}

	windows, err := s.availability.EffectiveWindows(in.TarotistaID, in.SessionDate)
	if err != nil {
		return nil, err
	}
	if !windowsContain(windows, start, in.DurationMinutes) {
		return nil, NewValidationError("requested slot is outside the tarotista's availability")
	}

	link := s.meetingLink()
	sess := &models.Session{
		TarotistaID:     in.TarotistaID,
		UserID:          userID,
		SessionDate:     in.SessionDate,
		SessionTime:     in.SessionTime,
		DurationMinutes: in.DurationMinutes,
		SessionType:     in.SessionType,
		Status:          models.SessionPending,
		PriceUSD:        s.pricing(in.DurationMinutes),
		PaymentStatus:   "pending",
		MeetingLink:     &link,
		UserEmail:       userEmail,
		UserNotes:       in.UserNotes,
	}
	if err := s.sessions.BookAtomically(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func windowsContain(windows []Window, startMin, durationMinutes int) bool {
	for _, w := range windows {
		if startMin >= w.StartMin && startMin+durationMinutes <= w.EndMin {
			return true
		}
	}
	return false
}

// Confirm moves a pending session to confirmed. Sessions belonging to
// another tarotista are reported as not found, not forbidden, so the
// endpoint does not leak other readers' session ids.
func (s *SessionService) Confirm(tarotistaID, sessionID uuid.UUID, notes *string) (*models.Session, error) {
	sess, err := s.sessions.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.TarotistaID != tarotistaID {
		return nil, NewNotFoundError("session not found")
	}
	if sess.Status != models.SessionPending {
		return nil, NewStateError("only pending sessions can be confirmed, current status is %q", sess.Status)
	}

	now := s.now()
	sess.Status = models.SessionConfirmed
	sess.ConfirmedAt = &now
	if notes != nil && *notes != "" {
		sess.TarotistaNotes = notes
	}
	if err := s.sessions.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Cancel ends a non-terminal session on behalf of either participant.
// Which cancelled status applies follows from who the actor is.
func (s *SessionService) Cancel(sessionID, actorID uuid.UUID, reason string) (*models.Session, error) {
	sess, err := s.sessions.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	var cancelledStatus string
	switch actorID {
	case sess.UserID:
		cancelledStatus = models.SessionCancelledByUser
	case sess.TarotistaID:
		cancelledStatus = models.SessionCancelledByTarotist
	default:
		return nil, NewForbiddenError("only the session's user or tarotista may cancel it")
	}

	if sess.IsTerminal() {
		return nil, NewStateError("session with status %q cannot be cancelled", sess.Status)
	}

	now := s.now()
	sess.Status = cancelledStatus
	sess.CancelledAt = &now
	sess.CancellationReason = &reason
	if err := s.sessions.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Complete marks a confirmed session as held.
func (s *SessionService) Complete(tarotistaID, sessionID uuid.UUID) (*models.Session, error) {
	sess, err := s.sessions.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.TarotistaID != tarotistaID {
		return nil, NewNotFoundError("session not found")
	}
	if sess.Status != models.SessionConfirmed {
		return nil, NewStateError("only confirmed sessions can be completed, current status is %q", sess.Status)
	}

	now := s.now()
	sess.Status = models.SessionCompleted
	sess.CompletedAt = &now
	if err := s.sessions.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionService) ListByUser(userID uuid.UUID, status string) ([]models.Session, error) {
	return s.sessions.ListByUser(userID, status)
}

func (s *SessionService) ListByTarotista(tarotistaID uuid.UUID, status string) ([]models.Session, error) {
	return s.sessions.ListByTarotista(tarotistaID, status)
}
