package models

import (
	"time"

	"github.com/google/uuid"
)

// Reading is one entry in a user's reading history. CardsDrawn is the
// comma-joined card names as the client drew them; the card catalog
// itself lives outside this service.
type Reading struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"not null;index" json:"user_id"`
	SpreadType     string    `gorm:"size:30;not null" json:"spread_type"`
	Question       string    `gorm:"type:text;not null" json:"question"`
	CardsDrawn     string    `gorm:"type:text;not null" json:"cards_drawn"`
	Interpretation string    `gorm:"type:text;not null" json:"interpretation"`
	FromCache      bool      `gorm:"default:false" json:"from_cache"`

	CreatedAt time.Time `json:"created_at"`
}
