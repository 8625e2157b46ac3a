// Package outbox delivers notifications recorded by committed state
// changes. Delivery failures are retried and never touch lifecycle state.
package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/service-center/internal/models"
)

type Store interface {
	// Claim returns messages no other worker holds. A claim older than
	// lease is considered abandoned.
	Claim(ctx context.Context, limit int, lease time.Duration) ([]models.OutboxMessage, error)
	MarkSent(ctx context.Context, id uuid.UUID, artifact *string) error
	MarkAttempt(ctx context.Context, id uuid.UUID, cause string, maxAttempts int) error
	LoadAppointment(ctx context.Context, id uint) (*models.Appointment, error)
}

// Notification is what the notification collaborator delivers.
type Notification struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	Recipient      string `json:"recipient"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentName string `json:"attachment_name,omitempty"`
	Attachment     []byte `json:"attachment,omitempty"`
	PaymentURL     string `json:"payment_url,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Renderer produces the itemized invoice of a completed appointment.
type Renderer interface {
	RenderInvoice(ap *models.Appointment) ([]byte, error)
}

// Archive stores rendered artifacts and returns where they were put.
type Archive interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type PaymentLinker interface {
	PaymentLink(ctx context.Context, ap *models.Appointment) (string, error)
}

// Kicker wakes the worker after a commit.
type Kicker interface {
	Kick()
}

// Kick wakes k if it is set.
func Kick(k Kicker) {
	if k != nil {
		k.Kick()
	}
}
