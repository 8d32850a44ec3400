package models

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyAvailability is a recurring open window for a tarotista.
// DayOfWeek follows time.Weekday: 0=Sunday .. 6=Saturday. Times are
// "HH:MM" in the tarotista's working timezone. A tarotista may keep
// several rows for the same weekday (split hours); consumers sort and
// merge them. Rows are never hard-deleted, only deactivated.
type WeeklyAvailability struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TarotistaID uuid.UUID `gorm:"not null;index" json:"tarotista_id"`
	DayOfWeek   int       `gorm:"not null" json:"day_of_week"`
	StartTime   string    `gorm:"size:5;not null" json:"start_time"`
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	Tarotista User `gorm:"foreignkey:TarotistaID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
