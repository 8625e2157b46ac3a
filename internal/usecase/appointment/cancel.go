package appointment

import (
	"context"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type CancelAppointment struct {
	lifecycle
}

func NewCancelAppointment(repo domain.Repository, sink audit.Sink) *CancelAppointment {
	return &CancelAppointment{lifecycle: newLifecycle(repo, sink, nil)}
}

// Execute frees the slot. No inventory is released because a scheduled
// job has reserved none.
func (uc *CancelAppointment) Execute(ctx context.Context, caller domain.Caller, appointmentID uint) (*models.Appointment, error) {
	ap, err := uc.apply(ctx, appointmentID, caller, domain.EventCancel,
		func(_ context.Context, _ domain.Tx, ap *models.Appointment) error {
			domain.Cancel(ap, uc.now())
			return nil
		})
	if err != nil {
		return nil, err
	}

	uc.record(caller, audit.ActionAppointmentCanceled, ap, nil)
	return ap, nil
}
