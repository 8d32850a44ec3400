package services

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/lunamistica/tarot_platform/models"
)

// In-memory store fakes. The session fake enforces the same atomic
// overlap guarantee as the gorm store so the double-booking tests mean
// something.

type fakeAvailabilityStore struct {
	rules      []models.WeeklyAvailability
	exceptions []models.AvailabilityException
}

func (f *fakeAvailabilityStore) UpsertWeeklyRule(rule *models.WeeklyAvailability) error {
	for i, existing := range f.rules {
		if existing.TarotistaID == rule.TarotistaID &&
			existing.DayOfWeek == rule.DayOfWeek &&
			existing.StartTime == rule.StartTime {
			rule.ID = existing.ID
			f.rules[i] = *rule
			return nil
		}
	}
	rule.ID = uuid.New()
	f.rules = append(f.rules, *rule)
	return nil
}

func (f *fakeAvailabilityStore) DeactivateWeeklyRule(tarotistaID, ruleID uuid.UUID) error {
	for i, rule := range f.rules {
		if rule.ID == ruleID && rule.TarotistaID == tarotistaID {
			f.rules[i].IsActive = false
			return nil
		}
	}
	return NewNotFoundError("availability rule not found")
}

func (f *fakeAvailabilityStore) WeeklyRules(tarotistaID uuid.UUID) ([]models.WeeklyAvailability, error) {
	var out []models.WeeklyAvailability
	for _, rule := range f.rules {
		if rule.TarotistaID == tarotistaID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityStore) ActiveWeeklyRules(tarotistaID uuid.UUID, dayOfWeek int) ([]models.WeeklyAvailability, error) {
	var out []models.WeeklyAvailability
	for _, rule := range f.rules {
		if rule.TarotistaID == tarotistaID && rule.DayOfWeek == dayOfWeek && rule.IsActive {
			out = append(out, rule)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeAvailabilityStore) UpsertException(exc *models.AvailabilityException) error {
	for i, existing := range f.exceptions {
		if existing.TarotistaID == exc.TarotistaID && existing.ExceptionDate == exc.ExceptionDate {
			exc.ID = existing.ID
			f.exceptions[i] = *exc
			return nil
		}
	}
	exc.ID = uuid.New()
	f.exceptions = append(f.exceptions, *exc)
	return nil
}

func (f *fakeAvailabilityStore) Exceptions(tarotistaID uuid.UUID) ([]models.AvailabilityException, error) {
	var out []models.AvailabilityException
	for _, exc := range f.exceptions {
		if exc.TarotistaID == tarotistaID {
			out = append(out, exc)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityStore) ExceptionOn(tarotistaID uuid.UUID, date string) (*models.AvailabilityException, error) {
	for _, exc := range f.exceptions {
		if exc.TarotistaID == tarotistaID && exc.ExceptionDate == date {
			copied := exc
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeSessionStore struct {
	mu         sync.Mutex
	sessions   []*models.Session
	tarotistas map[uuid.UUID]bool
}

func newFakeSessionStore(tarotistaIDs ...uuid.UUID) *fakeSessionStore {
	known := make(map[uuid.UUID]bool, len(tarotistaIDs))
	for _, id := range tarotistaIDs {
		known[id] = true
	}
	return &fakeSessionStore{tarotistas: known}
}

func (f *fakeSessionStore) BookAtomically(sess *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.tarotistas[sess.TarotistaID] {
		return NewNotFoundError("tarotista not found")
	}

	start, err := parseClock(sess.SessionTime)
	if err != nil {
		return NewValidationError("%v", err)
	}
	for _, other := range f.sessions {
		if other.TarotistaID != sess.TarotistaID || other.SessionDate != sess.SessionDate || other.IsCancelled() {
			continue
		}
		otherStart, err := parseClock(other.SessionTime)
		if err != nil {
			continue
		}
		if intervalsOverlap(start, sess.DurationMinutes, otherStart, other.DurationMinutes) {
			return NewConflictError("slot already booked")
		}
	}

	sess.ID = uuid.New()
	copied := *sess
	f.sessions = append(f.sessions, &copied)
	return nil
}

func (f *fakeSessionStore) FindByID(id uuid.UUID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sess := range f.sessions {
		if sess.ID == id {
			copied := *sess
			return &copied, nil
		}
	}
	return nil, NewNotFoundError("session not found")
}

func (f *fakeSessionStore) Save(sess *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.sessions {
		if existing.ID == sess.ID {
			copied := *sess
			f.sessions[i] = &copied
			return nil
		}
	}
	return NewNotFoundError("session not found")
}

func (f *fakeSessionStore) ActiveSessionsOn(tarotistaID uuid.UUID, date string) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, sess := range f.sessions {
		if sess.TarotistaID == tarotistaID && sess.SessionDate == date && !sess.IsCancelled() {
			out = append(out, *sess)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) ListByUser(userID uuid.UUID, status string) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, sess := range f.sessions {
		if sess.UserID == userID && (status == "" || sess.Status == status) {
			out = append(out, *sess)
		}
	}
	sortSessions(out)
	return out, nil
}

func (f *fakeSessionStore) ListByTarotista(tarotistaID uuid.UUID, status string) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Session
	for _, sess := range f.sessions {
		if sess.TarotistaID == tarotistaID && (status == "" || sess.Status == status) {
			out = append(out, *sess)
		}
	}
	sortSessions(out)
	return out, nil
}

func sortSessions(sessions []models.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].SessionDate != sessions[j].SessionDate {
			return sessions[i].SessionDate < sessions[j].SessionDate
		}
		return sessions[i].SessionTime < sessions[j].SessionTime
	})
}
