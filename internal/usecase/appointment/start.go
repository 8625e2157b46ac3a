package appointment

import (
	"context"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type StartService struct {
	lifecycle
}

func NewStartService(repo domain.Repository, sink audit.Sink) *StartService {
	return &StartService{lifecycle: newLifecycle(repo, sink, nil)}
}

func (uc *StartService) Execute(ctx context.Context, caller domain.Caller, appointmentID uint) (*models.Appointment, error) {
	ap, err := uc.apply(ctx, appointmentID, caller, domain.EventStart,
		func(_ context.Context, _ domain.Tx, ap *models.Appointment) error {
			domain.Start(ap, uc.now())
			return nil
		})
	if err != nil {
		return nil, err
	}

	uc.record(caller, audit.ActionServiceStarted, ap, nil)
	return ap, nil
}
