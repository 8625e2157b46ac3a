package appointment

import (
	"context"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/domain/inventory"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type AddPartInput struct {
	Caller          domain.Caller
	AppointmentID   uint
	InventoryItemID uint
	Quantity        int
}

type AddPart struct {
	lifecycle
}

func NewAddPart(repo domain.Repository, sink audit.Sink) *AddPart {
	return &AddPart{lifecycle: newLifecycle(repo, sink, nil)}
}

// Execute reserves stock and records the part in the same transaction, so
// a rejected guard or a failed insert leaves the ledger untouched.
func (uc *AddPart) Execute(ctx context.Context, in AddPartInput) (*models.Appointment, error) {
	if err := inventory.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}

	var reserved *models.InventoryItem

	ap, err := uc.apply(ctx, in.AppointmentID, in.Caller, domain.EventAddPart,
		func(ctx context.Context, tx domain.Tx, ap *models.Appointment) error {
			item, err := tx.Ledger().Reserve(ctx, in.InventoryItemID, in.Quantity)
			if err != nil {
				return err
			}
			reserved = item

			return tx.InsertPart(ctx, domain.AppendPart(ap, item, in.Quantity))
		})
	if err != nil {
		return nil, err
	}

	uc.record(in.Caller, audit.ActionPartAdded, ap, map[string]any{
		"inventory_item_id": reserved.ID,
		"quantity":          in.Quantity,
		"unit_price":        reserved.SalePrice.String(),
		"remaining":         reserved.Quantity,
	})
	return ap, nil
}
