package appointment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type AddLaborInput struct {
	Caller        domain.Caller
	AppointmentID uint
	Description   string
	Cost          decimal.Decimal
}

type AddLabor struct {
	lifecycle
}

func NewAddLabor(repo domain.Repository, sink audit.Sink) *AddLabor {
	return &AddLabor{lifecycle: newLifecycle(repo, sink, nil)}
}

func (uc *AddLabor) Execute(ctx context.Context, in AddLaborInput) (*models.Appointment, error) {
	ap, err := uc.apply(ctx, in.AppointmentID, in.Caller, domain.EventAddLabor,
		func(ctx context.Context, tx domain.Tx, ap *models.Appointment) error {
			item, err := domain.AppendLabor(ap, in.Description, in.Cost)
			if err != nil {
				return err
			}
			return tx.InsertLabor(ctx, item)
		})
	if err != nil {
		return nil, err
	}

	uc.record(in.Caller, audit.ActionLaborAdded, ap, map[string]any{"cost": in.Cost.String()})
	return ap, nil
}
