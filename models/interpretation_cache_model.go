package models

import (
	"time"

	"github.com/google/uuid"
)

// InterpretationCache stores generated interpretations keyed by a hash
// of the request, so identical spreads are served without regenerating.
// Expired rows are swept by a cron job.
type InterpretationCache struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CacheKey       string    `gorm:"size:64;not null;unique" json:"cache_key"`
	Interpretation string    `gorm:"type:text;not null" json:"interpretation"`
	HitCount       int       `gorm:"default:0" json:"hit_count"`
	ExpiresAt      time.Time `gorm:"not null;index" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}
