package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/domain/costing"
	"github.com/BruksfildServices01/service-center/internal/models"
	"github.com/BruksfildServices01/service-center/internal/outbox"
)

type FinishService struct {
	lifecycle
}

func NewFinishService(repo domain.Repository, sink audit.Sink, kicker outbox.Kicker) *FinishService {
	return &FinishService{lifecycle: newLifecycle(repo, sink, kicker)}
}

// Execute computes the totals once and queues the invoice notification in
// the same transaction. Rendering and delivery happen after commit.
func (uc *FinishService) Execute(ctx context.Context, caller domain.Caller, appointmentID uint) (*models.Appointment, error) {
	var totals costing.Totals

	ap, err := uc.apply(ctx, appointmentID, caller, domain.EventFinish,
		func(ctx context.Context, tx domain.Tx, ap *models.Appointment) error {
			totals = domain.Finish(ap, uc.now())

			customer, err := tx.FindUser(ctx, ap.CustomerID)
			if err != nil {
				return err
			}

			payload, err := json.Marshal(totals)
			if err != nil {
				return err
			}

			return tx.Enqueue(ctx, &models.OutboxMessage{
				Kind:          models.MessageInvoice,
				AppointmentID: &ap.ID,
				Recipient:     customer.Email,
				Subject:       "Your Service is Complete - Final Invoice",
				Body:          invoiceBody(customer, ap, totals),
				Payload:       datatypes.JSON(payload),
			})
		})
	if err != nil {
		return nil, err
	}

	outbox.Kick(uc.outbox)
	uc.record(caller, audit.ActionServiceFinished, ap, map[string]any{
		"subtotal":   totals.Subtotal.String(),
		"final_cost": totals.FinalCost.String(),
	})
	return ap, nil
}

func invoiceBody(customer *models.User, ap *models.Appointment, t costing.Totals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", customer.Name)
	fmt.Fprintf(&b, "Your %s service from %s is complete.\n", ap.ServiceType, ap.ServiceDate)
	fmt.Fprintf(&b, "Subtotal: %s\n", costing.Display(t.Subtotal))
	if t.Discounted {
		b.WriteString("Off-peak discount applied.\n")
	}
	fmt.Fprintf(&b, "Total due: %s\n\nThe itemized invoice is attached.\n", costing.Display(t.FinalCost))
	return b.String()
}
