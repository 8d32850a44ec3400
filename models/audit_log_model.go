package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ActorID      uuid.UUID `gorm:"index" json:"actor_id"`
	ActorRole    string    `gorm:"size:20" json:"actor_role"`
	Action       string    `gorm:"size:64;index" json:"action"`
	ResourceType string    `gorm:"size:64;index" json:"resource_type"`
	ResourceID   string    `gorm:"size:64;index" json:"resource_id"`
	Details      string    `gorm:"type:text" json:"details"`
	IPAddress    string    `gorm:"size:64" json:"ip_address"`
	CreatedAt    time.Time `json:"created_at"`
}
