package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExceptionBlocked     = "blocked"
	ExceptionCustomHours = "custom_hours"
)

// AvailabilityException overrides the weekly rule for a single calendar
// date. A "blocked" exception removes the whole day; "custom_hours"
// replaces the weekly window with StartTime-EndTime. At most one
// exception exists per tarotista per date.
type AvailabilityException struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TarotistaID   uuid.UUID `gorm:"not null;uniqueIndex:idx_exception_tarotista_date" json:"tarotista_id"`
	ExceptionDate string    `gorm:"size:10;not null;uniqueIndex:idx_exception_tarotista_date" json:"exception_date"`
	ExceptionType string    `gorm:"size:20;not null" json:"exception_type"`
	StartTime     *string   `gorm:"size:5" json:"start_time"`
	EndTime       *string   `gorm:"size:5" json:"end_time"`
	Reason        *string   `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
