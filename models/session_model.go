package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionPending             = "pending"
	SessionConfirmed           = "confirmed"
	SessionCompleted           = "completed"
	SessionCancelledByUser     = "cancelled_by_user"
	SessionCancelledByTarotist = "cancelled_by_tarotist"
)

// ActiveSessionStatuses are the statuses that occupy a slot. Cancelled
// sessions stay in the table but free their interval for rebooking.
var ActiveSessionStatuses = []string{SessionPending, SessionConfirmed, SessionCompleted}

type Session struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TarotistaID uuid.UUID `gorm:"not null;index" json:"tarotista_id"`
	UserID      uuid.UUID `gorm:"not null;index" json:"user_id"`

	SessionDate     string `gorm:"size:10;not null;index" json:"session_date"`
	SessionTime     string `gorm:"size:5;not null" json:"session_time"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	SessionType     string `gorm:"size:20;not null" json:"session_type"`
	Status          string `gorm:"size:30;not null;default:'pending'" json:"status"`

	PriceUSD      float64 `gorm:"type:numeric(10,2);not null" json:"price_usd"`
	PaymentStatus string  `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	MeetingLink   *string `gorm:"size:255" json:"meeting_link"`

	UserEmail      string  `gorm:"size:255;not null" json:"user_email"`
	UserNotes      *string `gorm:"type:text" json:"user_notes"`
	TarotistaNotes *string `gorm:"type:text" json:"tarotista_notes"`

	CancelledAt        *time.Time `json:"cancelled_at"`
	CancellationReason *string    `gorm:"size:255" json:"cancellation_reason"`
	ConfirmedAt        *time.Time `json:"confirmed_at"`
	CompletedAt        *time.Time `json:"completed_at"`

	Tarotista User `gorm:"foreignkey:TarotistaID" json:"tarotista,omitempty"`
	User      User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTerminal reports whether no further lifecycle transition is allowed.
func (s *Session) IsTerminal() bool {
	switch s.Status {
	case SessionCompleted, SessionCancelledByUser, SessionCancelledByTarotist:
		return true
	}
	return false
}

// IsCancelled reports whether the session no longer occupies its slot.
func (s *Session) IsCancelled() bool {
	return s.Status == SessionCancelledByUser || s.Status == SessionCancelledByTarotist
}
