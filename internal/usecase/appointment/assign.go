package appointment

import (
	"context"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type AssignMechanicInput struct {
	Caller        domain.Caller
	AppointmentID uint
	MechanicID    uint
}

type AssignMechanic struct {
	lifecycle
}

func NewAssignMechanic(repo domain.Repository, sink audit.Sink) *AssignMechanic {
	return &AssignMechanic{lifecycle: newLifecycle(repo, sink, nil)}
}

func (uc *AssignMechanic) Execute(ctx context.Context, in AssignMechanicInput) (*models.Appointment, error) {
	if in.MechanicID == 0 {
		return nil, httperr.Validation("mechanic_required", "Mechanic id is required.")
	}

	ap, err := uc.apply(ctx, in.AppointmentID, in.Caller, domain.EventAssign,
		func(ctx context.Context, tx domain.Tx, ap *models.Appointment) error {
			mechanic, err := tx.FindUser(ctx, in.MechanicID)
			if httperr.IsKind(err, httperr.KindNotFound) {
				mechanic, err = nil, nil
			}
			if err != nil {
				return err
			}
			return domain.Assign(ap, mechanic)
		})
	if err != nil {
		return nil, err
	}

	uc.record(in.Caller, audit.ActionAppointmentAssigned, ap, map[string]any{"mechanic_id": in.MechanicID})
	return ap, nil
}
