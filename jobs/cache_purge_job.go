package jobs

import (
	"log"
	"time"

	"github.com/lunamistica/tarot_platform/database"
	"github.com/lunamistica/tarot_platform/models"
)

// PurgeExpiredInterpretations sweeps interpretation-cache rows whose
// TTL has lapsed. The cache is read-through, so a swept entry simply
// regenerates on the next identical request.
func PurgeExpiredInterpretations() {
	log.Println("Running job: PurgeExpiredInterpretations...")

	result := database.DB.
		Where("expires_at < ?", time.Now()).
		Delete(&models.InterpretationCache{})
	if result.Error != nil {
		log.Printf("Error purging interpretation cache: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Purged %d expired interpretation cache entrie(s).", result.RowsAffected)
	}
}
