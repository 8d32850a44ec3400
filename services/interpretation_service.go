package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lunamistica/tarot_platform/models"
	"gorm.io/gorm"
)

var allowedSpreadTypes = map[string]int{
	"single_card":  1,
	"three_card":   3,
	"celtic_cross": 10,
}

// Interpreter produces the interpretation text for a drawn spread. The
// production implementation is pluggable; wiring an external AI
// provider is out of scope for this service.
type Interpreter interface {
	Interpret(spreadType, question string, cards []string) (string, error)
}

type InterpretationStore interface {
	FindByKey(key string) (*models.InterpretationCache, error)
	Create(entry *models.InterpretationCache) error
	RecordHit(id uuid.UUID) error
	CreateReading(reading *models.Reading) error
	ReadingsByUser(userID uuid.UUID) ([]models.Reading, error)
}

type InterpretationService struct {
	store       InterpretationStore
	interpreter Interpreter
	ttl         time.Duration
	now         func() time.Time
}

func NewInterpretationService(store InterpretationStore, interpreter Interpreter, ttl time.Duration) *InterpretationService {
	return &InterpretationService{store: store, interpreter: interpreter, ttl: ttl, now: time.Now}
}

// CreateReading serves the interpretation from cache when an identical
// spread was asked recently, otherwise generates and caches it, and
// always appends the result to the user's reading history.
func (s *InterpretationService) CreateReading(userID uuid.UUID, spreadType, question string, cards []string) (*models.Reading, error) {
	wantCards, ok := allowedSpreadTypes[spreadType]
	if !ok {
		return nil, NewValidationError("unknown spread_type %q", spreadType)
	}
	if len(cards) != wantCards {
		return nil, NewValidationError("spread %q requires exactly %d cards, got %d", spreadType, wantCards, len(cards))
	}
	for _, card := range cards {
		if strings.TrimSpace(card) == "" {
			return nil, NewValidationError("card names must not be empty")
		}
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, NewValidationError("question must not be empty")
	}

	key := interpretationCacheKey(spreadType, question, cards)
	now := s.now()

	var interpretation string
	fromCache := false

	cached, err := s.store.FindByKey(key)
	if err != nil {
		return nil, err
	}
	if cached != nil && cached.ExpiresAt.After(now) {
		interpretation = cached.Interpretation
		fromCache = true
		if err := s.store.RecordHit(cached.ID); err != nil {
			return nil, err
		}
	} else {
		interpretation, err = s.interpreter.Interpret(spreadType, question, cards)
		if err != nil {
			return nil, err
		}
		entry := &models.InterpretationCache{
			CacheKey:       key,
			Interpretation: interpretation,
			ExpiresAt:      now.Add(s.ttl),
		}
		// A stale row with the same key may still exist; the upsert in
		// the store replaces it.
		if err := s.store.Create(entry); err != nil {
			return nil, err
		}
	}

	reading := &models.Reading{
		UserID:         userID,
		SpreadType:     spreadType,
		Question:       question,
		CardsDrawn:     strings.Join(cards, ", "),
		Interpretation: interpretation,
		FromCache:      fromCache,
	}
	if err := s.store.CreateReading(reading); err != nil {
		return nil, err
	}
	return reading, nil
}

func (s *InterpretationService) History(userID uuid.UUID) ([]models.Reading, error) {
	return s.store.ReadingsByUser(userID)
}

// interpretationCacheKey hashes the normalized request. Card order is
// preserved: position carries meaning in a spread.
func interpretationCacheKey(spreadType, question string, cards []string) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	payload := spreadType + "|" + strings.Join(cards, "|") + "|" + normalized
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func NewInterpretationStore(db *gorm.DB) InterpretationStore {
	return &gormInterpretationStore{db: db}
}

type gormInterpretationStore struct {
	db *gorm.DB
}

func (s *gormInterpretationStore) FindByKey(key string) (*models.InterpretationCache, error) {
	var entry models.InterpretationCache
	err := s.db.Where("cache_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *gormInterpretationStore) Create(entry *models.InterpretationCache) error {
	var existing models.InterpretationCache
	err := s.db.Where("cache_key = ?", entry.CacheKey).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(entry).Error
	}
	if err != nil {
		return err
	}

	existing.Interpretation = entry.Interpretation
	existing.ExpiresAt = entry.ExpiresAt
	existing.HitCount = 0
	if err := s.db.Save(&existing).Error; err != nil {
		return err
	}
	*entry = existing
	return nil
}

func (s *gormInterpretationStore) RecordHit(id uuid.UUID) error {
	return s.db.Model(&models.InterpretationCache{}).
		Where("id = ?", id).
		Update("hit_count", gorm.Expr("hit_count + 1")).Error
}

func (s *gormInterpretationStore) CreateReading(reading *models.Reading) error {
	return s.db.Create(reading).Error
}

func (s *gormInterpretationStore) ReadingsByUser(userID uuid.UUID) ([]models.Reading, error) {
	var readings []models.Reading
	err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&readings).Error
	return readings, err
}
