package appointment

import (
	"context"

	"github.com/BruksfildServices01/service-center/internal/domain/inventory"
	"github.com/BruksfildServices01/service-center/internal/models"
)

// TransitionFunc mutates ap inside the transaction that locked it. Returning
// an error rolls back everything done through tx.
type TransitionFunc func(ctx context.Context, tx Tx, ap *models.Appointment) error

// Tx exposes the writes a transition may perform alongside the
// appointment row itself.
type Tx interface {
	Ledger() inventory.Ledger

	FindUser(ctx context.Context, id uint) (*models.User, error)

	InsertPart(ctx context.Context, part *models.AppointmentPart) error
	InsertLabor(ctx context.Context, item *models.LaborItem) error

	Enqueue(ctx context.Context, msg *models.OutboxMessage) error
}

type Repository interface {
	// -------- Referenced entities --------
	FindUser(ctx context.Context, id uint) (*models.User, error)
	FindVehicle(ctx context.Context, id uint) (*models.Vehicle, error)

	// -------- Appointment (create) --------

	// Create inserts ap and msgs atomically. An occupied slot is a conflict.
	Create(ctx context.Context, ap *models.Appointment, msgs ...*models.OutboxMessage) error

	// -------- Appointment (read) --------
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)

	// -------- Appointment (state change) --------

	// Transition loads the appointment with a row lock, runs fn, and writes
	// the row back only if its revision is unchanged.
	Transition(ctx context.Context, id uint, fn TransitionFunc) (*models.Appointment, error)
}
