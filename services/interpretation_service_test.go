package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lunamistica/tarot_platform/models"
	"github.com/stretchr/testify/assert"
)

type fakeInterpretationStore struct {
	entries  map[string]*models.InterpretationCache
	readings []models.Reading
}

func newFakeInterpretationStore() *fakeInterpretationStore {
	return &fakeInterpretationStore{entries: map[string]*models.InterpretationCache{}}
}

func (f *fakeInterpretationStore) FindByKey(key string) (*models.InterpretationCache, error) {
	entry, ok := f.entries[key]
	if !ok {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeInterpretationStore) Create(entry *models.InterpretationCache) error {
	if existing, ok := f.entries[entry.CacheKey]; ok {
		entry.ID = existing.ID
	} else {
		entry.ID = uuid.New()
	}
	entry.HitCount = 0
	copied := *entry
	f.entries[entry.CacheKey] = &copied
	return nil
}

func (f *fakeInterpretationStore) RecordHit(id uuid.UUID) error {
	for _, entry := range f.entries {
		if entry.ID == id {
			entry.HitCount++
			return nil
		}
	}
	return NewNotFoundError("cache entry not found")
}

func (f *fakeInterpretationStore) CreateReading(reading *models.Reading) error {
	reading.ID = uuid.New()
	f.readings = append(f.readings, *reading)
	return nil
}

func (f *fakeInterpretationStore) ReadingsByUser(userID uuid.UUID) ([]models.Reading, error) {
	var out []models.Reading
	for i := len(f.readings) - 1; i >= 0; i-- {
		if f.readings[i].UserID == userID {
			out = append(out, f.readings[i])
		}
	}
	return out, nil
}

// countingInterpreter wraps the template interpreter so tests can tell
// a cache hit from a regeneration.
type countingInterpreter struct {
	inner TemplateInterpreter
	calls int
}

func (c *countingInterpreter) Interpret(spreadType, question string, cards []string) (string, error) {
	c.calls++
	return c.inner.Interpret(spreadType, question, cards)
}

func newInterpretationFixture() (*InterpretationService, *fakeInterpretationStore, *countingInterpreter) {
	store := newFakeInterpretationStore()
	interpreter := &countingInterpreter{}
	svc := NewInterpretationService(store, interpreter, 24*time.Hour)
	svc.now = func() time.Time { return fixedNow }
	return svc, store, interpreter
}

func TestCreateReadingValidation(t *testing.T) {
	svc, _, _ := newInterpretationFixture()
	userID := uuid.New()

	tests := []struct {
		name       string
		spreadType string
		question   string
		cards      []string
	}{
		{"unknown spread", "horoscope", "what awaits me?", []string{"The Sun"}},
		{"too few cards", "three_card", "what awaits me?", []string{"The Sun"}},
		{"too many cards", "single_card", "what awaits me?", []string{"The Sun", "The Moon"}},
		{"blank card name", "single_card", "what awaits me?", []string{"  "}},
		{"blank question", "single_card", "   ", []string{"The Sun"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReading(userID, tt.spreadType, tt.question, tt.cards)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestCreateReadingCachesInterpretations(t *testing.T) {
	svc, store, interpreter := newInterpretationFixture()
	userID := uuid.New()
	cards := []string{"The Sun", "The Moon", "The Star"}

	first, err := svc.CreateReading(userID, "three_card", "What awaits me?", cards)
	assert.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.NotEmpty(t, first.Interpretation)
	assert.Equal(t, "The Sun, The Moon, The Star", first.CardsDrawn)
	assert.Equal(t, 1, interpreter.calls)

	// An identical spread is served from cache, even for another user.
	second, err := svc.CreateReading(uuid.New(), "three_card", "What awaits me?", cards)
	assert.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Interpretation, second.Interpretation)
	assert.Equal(t, 1, interpreter.calls)

	key := interpretationCacheKey("three_card", "What awaits me?", cards)
	if entry, ok := store.entries[key]; assert.True(t, ok) {
		assert.Equal(t, 1, entry.HitCount)
	}

	// Both readings land in history regardless of the cache.
	history, err := svc.History(userID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCreateReadingCacheKeyNormalization(t *testing.T) {
	svc, _, interpreter := newInterpretationFixture()
	userID := uuid.New()
	cards := []string{"The Sun", "The Moon", "The Star"}

	_, err := svc.CreateReading(userID, "three_card", "What awaits me?", cards)
	assert.NoError(t, err)

	// Question casing and surrounding whitespace do not miss the cache.
	reading, err := svc.CreateReading(userID, "three_card", "  WHAT AWAITS ME?  ", cards)
	assert.NoError(t, err)
	assert.True(t, reading.FromCache)
	assert.Equal(t, 1, interpreter.calls)

	// Card order matters: a reversed spread is a different reading.
	reversed := []string{"The Star", "The Moon", "The Sun"}
	reading, err = svc.CreateReading(userID, "three_card", "What awaits me?", reversed)
	assert.NoError(t, err)
	assert.False(t, reading.FromCache)
	assert.Equal(t, 2, interpreter.calls)
}

func TestCreateReadingExpiredCacheRegenerates(t *testing.T) {
	svc, store, interpreter := newInterpretationFixture()
	userID := uuid.New()
	cards := []string{"The Tower"}

	_, err := svc.CreateReading(userID, "single_card", "Should I move?", cards)
	assert.NoError(t, err)
	assert.Equal(t, 1, interpreter.calls)

	// Jump past the TTL; the stale entry is replaced, not served.
	svc.now = func() time.Time { return fixedNow.Add(25 * time.Hour) }
	reading, err := svc.CreateReading(userID, "single_card", "Should I move?", cards)
	assert.NoError(t, err)
	assert.False(t, reading.FromCache)
	assert.Equal(t, 2, interpreter.calls)

	key := interpretationCacheKey("single_card", "Should I move?", cards)
	if entry, ok := store.entries[key]; assert.True(t, ok) {
		assert.Equal(t, 0, entry.HitCount)
		assert.True(t, entry.ExpiresAt.After(fixedNow.Add(25*time.Hour)))
	}
}

func TestInterpretationCacheKeyStability(t *testing.T) {
	cards := []string{"The Sun", "The Moon"}
	a := interpretationCacheKey("three_card", "hello", cards)
	b := interpretationCacheKey("three_card", "hello", cards)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, interpretationCacheKey("celtic_cross", "hello", cards))
	assert.NotEqual(t, a, interpretationCacheKey("three_card", "goodbye", cards))
}
