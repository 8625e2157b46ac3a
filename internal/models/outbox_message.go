package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	OutboxPending = "pending"
	OutboxSending = "sending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

const (
	MessageBookingConfirmed = "booking_confirmed"
	MessageInvoice          = "invoice"
	MessageSupplierOrder    = "supplier_order"
)

// OutboxMessage is written in the same transaction as the state change that
// produced it and delivered later by the outbox worker.
type OutboxMessage struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Kind          string         `gorm:"size:40;not null" json:"kind"`
	AppointmentID *uint          `gorm:"index" json:"appointment_id"`
	Recipient     string         `gorm:"size:100;not null" json:"recipient"`
	Subject       string         `gorm:"size:200;not null" json:"subject"`
	Body          string         `gorm:"type:text" json:"body"`
	Payload       datatypes.JSON `json:"payload"`

	Status    string  `gorm:"size:20;not null;index" json:"status"`
	Attempts  int     `gorm:"not null" json:"attempts"`
	LastError string  `gorm:"type:text" json:"last_error"`
	Artifact  *string `gorm:"size:255" json:"artifact"`

	// Set while a worker holds the message.
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at"`
}
