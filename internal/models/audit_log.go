package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is one accepted state change, written off the request path.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `gorm:"index" json:"user_id"`
	Role   string `gorm:"size:20" json:"role"`
	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity   string         `gorm:"size:50;index:idx_audit_entity" json:"entity"`
	EntityID *uint          `gorm:"index:idx_audit_entity" json:"entity_id"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
