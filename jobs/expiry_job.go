package jobs

import (
	"log"
	"time"

	"github.com/lunamistica/tarot_platform/database"
	"github.com/lunamistica/tarot_platform/models"
)

const staleCancellationReason = "Automatically cancelled: the session was never confirmed before its start time"

// ExpireStalePendingSessions cancels pending sessions whose start time
// has already passed, so unconfirmed bookings do not hold their slot
// forever. The dates and times are ISO-formatted strings, so plain
// string comparison orders them correctly.
func ExpireStalePendingSessions() {
	log.Println("Running job: ExpireStalePendingSessions...")

	now := time.Now()
	today := now.Format("2006-01-02")
	currentClock := now.Format("15:04")

	var stale []models.Session
	err := database.DB.
		Where("status = ? AND (session_date < ? OR (session_date = ? AND session_time <= ?))",
			models.SessionPending, today, today, currentClock).
		Find(&stale).Error
	if err != nil {
		log.Printf("Error checking for stale pending sessions: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	reason := staleCancellationReason
	for _, sess := range stale {
		cancelledAt := now
		sess.Status = models.SessionCancelledByTarotist
		sess.CancelledAt = &cancelledAt
		sess.CancellationReason = &reason
		if err := database.DB.Save(&sess).Error; err != nil {
			log.Printf("Error expiring session %s: %v", sess.ID, err)
		}
	}

	log.Printf("Expired %d stale pending session(s).", len(stale))
}
