package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lunamistica/tarot_platform/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityStore is the persistence boundary for weekly rules and
// date exceptions. The gorm implementation below is the real one; tests
// substitute an in-memory fake.
type AvailabilityStore interface {
	UpsertWeeklyRule(rule *models.WeeklyAvailability) error
	DeactivateWeeklyRule(tarotistaID, ruleID uuid.UUID) error
	WeeklyRules(tarotistaID uuid.UUID) ([]models.WeeklyAvailability, error)
	ActiveWeeklyRules(tarotistaID uuid.UUID, dayOfWeek int) ([]models.WeeklyAvailability, error)
	UpsertException(exc *models.AvailabilityException) error
	Exceptions(tarotistaID uuid.UUID) ([]models.AvailabilityException, error)
	ExceptionOn(tarotistaID uuid.UUID, date string) (*models.AvailabilityException, error)
}

// SessionStore is the persistence boundary for the session ledger.
// BookAtomically must make the overlap check and the insert a single
// transactional unit so concurrent bookings of one slot cannot both win.
type SessionStore interface {
	BookAtomically(sess *models.Session) error
	FindByID(id uuid.UUID) (*models.Session, error)
	Save(sess *models.Session) error
	ActiveSessionsOn(tarotistaID uuid.UUID, date string) ([]models.Session, error)
	ListByUser(userID uuid.UUID, status string) ([]models.Session, error)
	ListByTarotista(tarotistaID uuid.UUID, status string) ([]models.Session, error)
}

func NewAvailabilityStore(db *gorm.DB) AvailabilityStore {
	return &gormAvailabilityStore{db: db}
}

func NewSessionStore(db *gorm.DB) SessionStore {
	return &gormSessionStore{db: db}
}

type gormAvailabilityStore struct {
	db *gorm.DB
}

// UpsertWeeklyRule updates the rule matching (tarotista, weekday, start)
// or creates a new row. Matching on start time keeps split windows for
// the same weekday as independent rows.
func (s *gormAvailabilityStore) UpsertWeeklyRule(rule *models.WeeklyAvailability) error {
	var existing models.WeeklyAvailability
	err := s.db.Where("tarotista_id = ? AND day_of_week = ? AND start_time = ?",
		rule.TarotistaID, rule.DayOfWeek, rule.StartTime).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(rule).Error
	}
	if err != nil {
		return err
	}

	existing.EndTime = rule.EndTime
	existing.IsActive = true
	if err := s.db.Save(&existing).Error; err != nil {
		return err
	}
	*rule = existing
	return nil
}

func (s *gormAvailabilityStore) DeactivateWeeklyRule(tarotistaID, ruleID uuid.UUID) error {
	result := s.db.Model(&models.WeeklyAvailability{}).
		Where("id = ? AND tarotista_id = ?", ruleID, tarotistaID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("availability rule not found")
	}
	return nil
}

func (s *gormAvailabilityStore) WeeklyRules(tarotistaID uuid.UUID) ([]models.WeeklyAvailability, error) {
	var rules []models.WeeklyAvailability
	err := s.db.Where("tarotista_id = ?", tarotistaID).
		Order("day_of_week asc, start_time asc").
		Find(&rules).Error
	return rules, err
}

func (s *gormAvailabilityStore) ActiveWeeklyRules(tarotistaID uuid.UUID, dayOfWeek int) ([]models.WeeklyAvailability, error) {
	var rules []models.WeeklyAvailability
	err := s.db.Where("tarotista_id = ? AND day_of_week = ? AND is_active = ?", tarotistaID, dayOfWeek, true).
		Order("start_time asc").
		Find(&rules).Error
	return rules, err
}

func (s *gormAvailabilityStore) UpsertException(exc *models.AvailabilityException) error {
	var existing models.AvailabilityException
	err := s.db.Where("tarotista_id = ? AND exception_date = ?",
		exc.TarotistaID, exc.ExceptionDate).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(exc).Error
	}
	if err != nil {
		return err
	}

	existing.ExceptionType = exc.ExceptionType
	existing.StartTime = exc.StartTime
	existing.EndTime = exc.EndTime
	existing.Reason = exc.Reason
	if err := s.db.Save(&existing).Error; err != nil {
		return err
	}
	*exc = existing
	return nil
}

func (s *gormAvailabilityStore) Exceptions(tarotistaID uuid.UUID) ([]models.AvailabilityException, error) {
	var excs []models.AvailabilityException
	err := s.db.Where("tarotista_id = ?", tarotistaID).
		Order("exception_date asc").
		Find(&excs).Error
	return excs, err
}

func (s *gormAvailabilityStore) ExceptionOn(tarotistaID uuid.UUID, date string) (*models.AvailabilityException, error) {
	var exc models.AvailabilityException
	err := s.db.Where("tarotista_id = ? AND exception_date = ?", tarotistaID, date).First(&exc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exc, nil
}

type gormSessionStore struct {
	db *gorm.DB
}

// BookAtomically serializes bookings per tarotista by locking the
// tarotista row for the duration of the check-and-insert. The partial
// unique index on (tarotista_id, session_date, session_time) is the
// commit-time backstop; its violation surfaces as a ConflictError.
func (s *gormSessionStore) BookAtomically(sess *models.Session) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tarotista models.Tarotista
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tarotista, "user_id = ?", sess.TarotistaID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("tarotista not found")
		}
		if err != nil {
			return err
		}

		start, err := parseClock(sess.SessionTime)
		if err != nil {
			return NewValidationError("%v", err)
		}

		var existing []models.Session
		if err := tx.Where("tarotista_id = ? AND session_date = ? AND status IN ?",
			sess.TarotistaID, sess.SessionDate, models.ActiveSessionStatuses).
			Find(&existing).Error; err != nil {
			return err
		}
		for _, other := range existing {
			otherStart, err := parseClock(other.SessionTime)
			if err != nil {
				continue
			}
			if intervalsOverlap(start, sess.DurationMinutes, otherStart, other.DurationMinutes) {
				return NewConflictError("slot already booked")
			}
		}

		if err := tx.Create(sess).Error; err != nil {
			if isDuplicateKey(err) {
				return NewConflictError("slot already booked")
			}
			return err
		}
		return nil
	})
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key value")
}

func (s *gormSessionStore) FindByID(id uuid.UUID) (*models.Session, error) {
	var sess models.Session
	err := s.db.First(&sess, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("session not found")
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *gormSessionStore) Save(sess *models.Session) error {
	return s.db.Save(sess).Error
}

func (s *gormSessionStore) ActiveSessionsOn(tarotistaID uuid.UUID, date string) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.Where("tarotista_id = ? AND session_date = ? AND status IN ?",
		tarotistaID, date, models.ActiveSessionStatuses).
		Find(&sessions).Error
	return sessions, err
}

func (s *gormSessionStore) ListByUser(userID uuid.UUID, status string) ([]models.Session, error) {
	query := s.db.Preload("Tarotista").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var sessions []models.Session
	err := query.Order("session_date asc, session_time asc").Find(&sessions).Error
	return sessions, err
}

func (s *gormSessionStore) ListByTarotista(tarotistaID uuid.UUID, status string) ([]models.Session, error) {
	query := s.db.Preload("User").Where("tarotista_id = ?", tarotistaID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var sessions []models.Session
	err := query.Order("session_date asc, session_time asc").Find(&sessions).Error
	return sessions, err
}
