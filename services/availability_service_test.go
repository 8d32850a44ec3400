package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lunamistica/tarot_platform/models"
	"github.com/stretchr/testify/assert"
)

// 2026-09-07 is a Monday.
const (
	mondayDate  = "2026-09-07"
	tuesdayDate = "2026-09-08"
)

var fixedNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)

func newAvailabilityFixture() (*AvailabilityService, *fakeAvailabilityStore, *fakeSessionStore, uuid.UUID) {
	tarotistaID := uuid.New()
	store := &fakeAvailabilityStore{}
	sessions := newFakeSessionStore(tarotistaID)
	svc := NewAvailabilityService(store, sessions)
	svc.now = func() time.Time { return fixedNow }
	return svc, store, sessions, tarotistaID
}

func TestSetWeeklyAvailabilityValidation(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	tests := []struct {
		name      string
		dayOfWeek int
		start     string
		end       string
	}{
		{"day of week too large", 7, "09:00", "18:00"},
		{"negative day of week", -1, "09:00", "18:00"},
		{"start equals end", 1, "09:00", "09:00"},
		{"start after end", 1, "18:00", "09:00"},
		{"malformed start", 1, "9:00", "18:00"},
		{"malformed end", 1, "09:00", "25:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetWeeklyAvailability(tarotistaID, tt.dayOfWeek, tt.start, tt.end)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestSetWeeklyAvailabilityUpsert(t *testing.T) {
	svc, store, _, tarotistaID := newAvailabilityFixture()

	first, err := svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "17:00")
	assert.NoError(t, err)

	second, err := svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "18:00")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.rules, 1)
	assert.Equal(t, "18:00", store.rules[0].EndTime)
}

func TestSetExceptionValidation(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	start, end := "10:00", "14:00"

	_, err := svc.SetException(tarotistaID, mondayDate, "custom_hours", nil, nil, nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.SetException(tarotistaID, mondayDate, "custom_hours", &end, &start, nil)
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.SetException(tarotistaID, mondayDate, "holiday", nil, nil, nil)
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.SetException(tarotistaID, "07-09-2026", "blocked", nil, nil, nil)
	assert.ErrorAs(t, err, &validationErr)

	// Blocked exceptions discard any provided time range.
	exc, err := svc.SetException(tarotistaID, mondayDate, "blocked", &start, &end, nil)
	assert.NoError(t, err)
	assert.Nil(t, exc.StartTime)
	assert.Nil(t, exc.EndTime)
}

func TestSetExceptionUpsertsPerDate(t *testing.T) {
	svc, store, _, tarotistaID := newAvailabilityFixture()

	start, end := "10:00", "14:00"
	_, err := svc.SetException(tarotistaID, mondayDate, "blocked", nil, nil, nil)
	assert.NoError(t, err)
	_, err = svc.SetException(tarotistaID, mondayDate, "custom_hours", &start, &end, nil)
	assert.NoError(t, err)

	assert.Len(t, store.exceptions, 1)
	assert.Equal(t, "custom_hours", store.exceptions[0].ExceptionType)
}

func TestEffectiveWindows(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	// No rules at all.
	windows, err := svc.EffectiveWindows(tarotistaID, mondayDate)
	assert.NoError(t, err)
	assert.Empty(t, windows)

	_, err = svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "18:00")
	assert.NoError(t, err)

	windows, err = svc.EffectiveWindows(tarotistaID, mondayDate)
	assert.NoError(t, err)
	assert.Equal(t, []Window{{StartMin: 9 * 60, EndMin: 18 * 60}}, windows)

	// The weekly rule does not leak onto other weekdays.
	windows, err = svc.EffectiveWindows(tarotistaID, tuesdayDate)
	assert.NoError(t, err)
	assert.Empty(t, windows)

	// A custom-hours exception replaces the weekly window for its date.
	start, end := "12:00", "15:00"
	_, err = svc.SetException(tarotistaID, mondayDate, "custom_hours", &start, &end, nil)
	assert.NoError(t, err)
	windows, err = svc.EffectiveWindows(tarotistaID, mondayDate)
	assert.NoError(t, err)
	assert.Equal(t, []Window{{StartMin: 12 * 60, EndMin: 15 * 60}}, windows)

	// A blocked exception removes the date entirely.
	_, err = svc.SetException(tarotistaID, mondayDate, "blocked", nil, nil, nil)
	assert.NoError(t, err)
	windows, err = svc.EffectiveWindows(tarotistaID, mondayDate)
	assert.NoError(t, err)
	assert.Empty(t, windows)
}

func TestEffectiveWindowsIgnoresInactiveRules(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	rule, err := svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "18:00")
	assert.NoError(t, err)
	assert.NoError(t, svc.DisableWeeklyAvailability(tarotistaID, rule.ID))

	windows, err := svc.EffectiveWindows(tarotistaID, mondayDate)
	assert.NoError(t, err)
	assert.Empty(t, windows)
}

func TestEffectiveWindowsMergesSplitRules(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	_, err := svc.SetWeeklyAvailability(tarotistaID, 1, "14:00", "18:00")
	assert.NoError(t, err)
	_, err = svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "12:00")
	assert.NoError(t, err)
	_, err = svc.SetWeeklyAvailability(tarotistaID, 1, "11:00", "13:00")
	assert.NoError(t, err)

	windows, err := svc.EffectiveWindows(tarotistaID, mondayDate)
	assert.NoError(t, err)
	assert.Equal(t, []Window{
		{StartMin: 9 * 60, EndMin: 13 * 60},
		{StartMin: 14 * 60, EndMin: 18 * 60},
	}, windows)
}

func TestAvailableSlotsWeeklyRuleOnly(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	_, err := svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "18:00")
	assert.NoError(t, err)

	slots, err := svc.AvailableSlots(tarotistaID, mondayDate, mondayDate, 60)
	assert.NoError(t, err)
	assert.Len(t, slots, 9)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "17:00", slots[8].Time)
	for _, slot := range slots {
		assert.Equal(t, mondayDate, slot.Date)
		assert.Equal(t, 60, slot.DurationMinutes)
		assert.True(t, slot.Available)
	}

	// A 90-minute grid never starts a slot that would overrun the window.
	slots, err = svc.AvailableSlots(tarotistaID, mondayDate, mondayDate, 90)
	assert.NoError(t, err)
	assert.Len(t, slots, 6)
	assert.Equal(t, "16:30", slots[5].Time)
}

func TestAvailableSlotsBlockedDate(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	_, err := svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "18:00")
	assert.NoError(t, err)
	_, err = svc.SetException(tarotistaID, mondayDate, "blocked", nil, nil, nil)
	assert.NoError(t, err)

	slots, err := svc.AvailableSlots(tarotistaID, mondayDate, mondayDate, 60)
	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsExcludesBookedIntervals(t *testing.T) {
	svc, _, sessions, tarotistaID := newAvailabilityFixture()

	_, err := svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "18:00")
	assert.NoError(t, err)

	err = sessions.BookAtomically(&models.Session{
		TarotistaID:     tarotistaID,
		UserID:          uuid.New(),
		SessionDate:     mondayDate,
		SessionTime:     "10:30",
		DurationMinutes: 60,
		Status:          models.SessionPending,
	})
	assert.NoError(t, err)

	slots, err := svc.AvailableSlots(tarotistaID, mondayDate, mondayDate, 60)
	assert.NoError(t, err)
	// The 10:00 and 11:00 grid slots both overlap the 10:30 booking.
	assert.Len(t, slots, 7)
	for _, slot := range slots {
		assert.NotEqual(t, "10:00", slot.Time)
		assert.NotEqual(t, "11:00", slot.Time)
	}
}

func TestAvailableSlotsIgnoresCancelledSessions(t *testing.T) {
	svc, _, sessions, tarotistaID := newAvailabilityFixture()

	_, err := svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "18:00")
	assert.NoError(t, err)

	booked := &models.Session{
		TarotistaID:     tarotistaID,
		UserID:          uuid.New(),
		SessionDate:     mondayDate,
		SessionTime:     "09:00",
		DurationMinutes: 60,
		Status:          models.SessionPending,
	}
	assert.NoError(t, sessions.BookAtomically(booked))

	booked.Status = models.SessionCancelledByUser
	assert.NoError(t, sessions.Save(booked))

	slots, err := svc.AvailableSlots(tarotistaID, mondayDate, mondayDate, 60)
	assert.NoError(t, err)
	assert.Len(t, slots, 9)
}

func TestAvailableSlotsIdempotent(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	_, err := svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "18:00")
	assert.NoError(t, err)

	first, err := svc.AvailableSlots(tarotistaID, mondayDate, mondayDate, 60)
	assert.NoError(t, err)
	second, err := svc.AvailableSlots(tarotistaID, mondayDate, mondayDate, 60)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvailableSlotsInvertedRange(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	_, err := svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "18:00")
	assert.NoError(t, err)

	slots, err := svc.AvailableSlots(tarotistaID, tuesdayDate, mondayDate, 60)
	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsExcludesPast(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	_, err := svc.SetWeeklyAvailability(tarotistaID, 1, "09:00", "18:00")
	assert.NoError(t, err)

	// Mid-Monday: slots at or before 10:30 are gone.
	svc.now = func() time.Time {
		return time.Date(2026, 9, 7, 10, 30, 0, 0, time.Local)
	}
	slots, err := svc.AvailableSlots(tarotistaID, mondayDate, mondayDate, 60)
	assert.NoError(t, err)
	assert.Len(t, slots, 7)
	assert.Equal(t, "11:00", slots[0].Time)

	// A fully past date yields nothing.
	svc.now = func() time.Time {
		return time.Date(2026, 9, 8, 0, 0, 0, 0, time.Local)
	}
	slots, err = svc.AvailableSlots(tarotistaID, mondayDate, mondayDate, 60)
	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsRejectsBadDuration(t *testing.T) {
	svc, _, _, tarotistaID := newAvailabilityFixture()

	_, err := svc.AvailableSlots(tarotistaID, mondayDate, mondayDate, 45)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
