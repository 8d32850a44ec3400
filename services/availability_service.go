package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lunamistica/tarot_platform/models"
)

// Window is an open interval within one day, in minutes since midnight.
type Window struct {
	StartMin int
	EndMin   int
}

// Slot is a concrete bookable interval offered to users. Only free
// slots are emitted, so Available is always true in responses; the
// field is kept so the payload shape is explicit.
type Slot struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Available       bool   `json:"available"`
}

var allowedDurations = map[int]bool{30: true, 60: true, 90: true}

type AvailabilityService struct {
	store    AvailabilityStore
	sessions SessionStore
	now      func() time.Time
}

func NewAvailabilityService(store AvailabilityStore, sessions SessionStore) *AvailabilityService {
	return &AvailabilityService{store: store, sessions: sessions, now: time.Now}
}

// SetWeeklyAvailability upserts a recurring window for a weekday.
func (s *AvailabilityService) SetWeeklyAvailability(tarotistaID uuid.UUID, dayOfWeek int, startTime, endTime string) (*models.WeeklyAvailability, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, NewValidationError("day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	}
	start, err := parseClock(startTime)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	end, err := parseClock(endTime)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	if start >= end {
		return nil, NewValidationError("start_time must be before end_time")
	}

	rule := &models.WeeklyAvailability{
		TarotistaID: tarotistaID,
		DayOfWeek:   dayOfWeek,
		StartTime:   startTime,
		EndTime:     endTime,
		IsActive:    true,
	}
	if err := s.store.UpsertWeeklyRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// DisableWeeklyAvailability soft-disables a rule; rows are never
// hard-deleted so past slot views stay explainable.
func (s *AvailabilityService) DisableWeeklyAvailability(tarotistaID, ruleID uuid.UUID) error {
	return s.store.DeactivateWeeklyRule(tarotistaID, ruleID)
}

func (s *AvailabilityService) WeeklyRules(tarotistaID uuid.UUID) ([]models.WeeklyAvailability, error) {
	return s.store.WeeklyRules(tarotistaID)
}

// SetException upserts the single exception for a calendar date. A
// blocked exception needs no time range; custom hours require one.
func (s *AvailabilityService) SetException(tarotistaID uuid.UUID, date, excType string, startTime, endTime, reason *string) (*models.AvailabilityException, error) {
	if _, err := parseDate(date); err != nil {
		return nil, NewValidationError("%v", err)
	}

	switch excType {
	case models.ExceptionBlocked:
		startTime, endTime = nil, nil
	case models.ExceptionCustomHours:
		if startTime == nil || endTime == nil {
			return nil, NewValidationError("custom_hours exception requires start_time and end_time")
		}
		start, err := parseClock(*startTime)
		if err != nil {
			return nil, NewValidationError("%v", err)
		}
		end, err := parseClock(*endTime)
		if err != nil {
			return nil, NewValidationError("%v", err)
		}
		if start >= end {
			return nil, NewValidationError("start_time must be before end_time")
		}
	default:
		return nil, NewValidationError("exception_type must be %q or %q", models.ExceptionBlocked, models.ExceptionCustomHours)
	}

	exc := &models.AvailabilityException{
		TarotistaID:   tarotistaID,
		ExceptionDate: date,
		ExceptionType: excType,
		StartTime:     startTime,
		EndTime:       endTime,
		Reason:        reason,
	}
	if err := s.store.UpsertException(exc); err != nil {
		return nil, err
	}
	return exc, nil
}

func (s *AvailabilityService) Exceptions(tarotistaID uuid.UUID) ([]models.AvailabilityException, error) {
	return s.store.Exceptions(tarotistaID)
}

// EffectiveWindows resolves the open windows for one date: an exception
// for that date wins outright (blocked means none, custom hours means
// exactly that window); otherwise the active weekly rules for the
// weekday apply, sorted by start and merged where they touch. An empty
// result means the tarotista is closed that day.
func (s *AvailabilityService) EffectiveWindows(tarotistaID uuid.UUID, date string) ([]Window, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}

	exc, err := s.store.ExceptionOn(tarotistaID, date)
	if err != nil {
		return nil, err
	}
	if exc != nil {
		if exc.ExceptionType == models.ExceptionBlocked || exc.StartTime == nil || exc.EndTime == nil {
			return nil, nil
		}
		start, err := parseClock(*exc.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(*exc.EndTime)
		if err != nil {
			return nil, err
		}
		return []Window{{StartMin: start, EndMin: end}}, nil
	}

	rules, err := s.store.ActiveWeeklyRules(tarotistaID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(rules))
	for _, rule := range rules {
		start, err := parseClock(rule.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(rule.EndTime)
		if err != nil || start >= end {
			continue
		}
		windows = append(windows, Window{StartMin: start, EndMin: end})
	}
	return mergeWindows(windows), nil
}

// mergeWindows sorts by start and coalesces overlapping or touching
// windows so split weekly rows behave as one continuous range.
func mergeWindows(windows []Window) []Window {
	if len(windows) < 2 {
		return windows
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].StartMin < windows[j].StartMin })

	merged := windows[:1]
	for _, w := range windows[1:] {
		last := &merged[len(merged)-1]
		if w.StartMin <= last.EndMin {
			if w.EndMin > last.EndMin {
				last.EndMin = w.EndMin
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// AvailableSlots derives the free slots for every date in [startDate,
// endDate], stepping each window at the requested duration. Booked
// intervals and slots starting at or before "now" are dropped. An
// inverted range yields an empty list, not an error.
func (s *AvailabilityService) AvailableSlots(tarotistaID uuid.UUID, startDate, endDate string, durationMinutes int) ([]Slot, error) {
	if !allowedDurations[durationMinutes] {
		return nil, NewValidationError("duration_minutes must be 30, 60 or 90")
	}
	from, err := parseDate(startDate)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}
	to, err := parseDate(endDate)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}

	now := s.now()
	slots := []Slot{}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		date := day.Format(dateLayout)

		windows, err := s.EffectiveWindows(tarotistaID, date)
		if err != nil {
			return nil, err
		}
		if len(windows) == 0 {
			continue
		}

		booked, err := s.sessions.ActiveSessionsOn(tarotistaID, date)
		if err != nil {
			return nil, err
		}

		for _, window := range windows {
			for start := window.StartMin; start+durationMinutes <= window.EndMin; start += durationMinutes {
				if !slotStartsAt(day, start).After(now) {
					continue
				}
				if slotIsBooked(booked, start, durationMinutes) {
					continue
				}
				slots = append(slots, Slot{
					Date:            date,
					Time:            formatClock(start),
					DurationMinutes: durationMinutes,
					Available:       true,
				})
			}
		}
	}
	return slots, nil
}

func slotIsBooked(sessions []models.Session, startMin, durationMinutes int) bool {
	for _, sess := range sessions {
		otherStart, err := parseClock(sess.SessionTime)
		if err != nil {
			continue
		}
		if intervalsOverlap(startMin, durationMinutes, otherStart, sess.DurationMinutes) {
			return true
		}
	}
	return false
}
