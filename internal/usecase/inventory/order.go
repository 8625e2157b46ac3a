package inventory

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/service-center/internal/domain/inventory"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
	"github.com/BruksfildServices01/service-center/internal/outbox"
	"github.com/BruksfildServices01/service-center/internal/validators"
)

type OrderInput struct {
	ItemID        uint
	Quantity      int
	SupplierEmail string
}

type OrderFromSupplier struct {
	repo   domain.Repository
	outbox outbox.Kicker

	checkDomain func(email string) bool
}

func NewOrderFromSupplier(repo domain.Repository, kicker outbox.Kicker) *OrderFromSupplier {
	return &OrderFromSupplier{repo: repo, outbox: kicker}
}

// WithDomainCheck makes Execute reject supplier addresses whose domain
// check fails, e.g. validators.IsEmailDomainValid.
func (uc *OrderFromSupplier) WithDomainCheck(check func(email string) bool) *OrderFromSupplier {
	uc.checkDomain = check
	return uc
}

// Execute queues a stock order request to the supplier. Stock is not
// changed until the delivery is received.
func (uc *OrderFromSupplier) Execute(ctx context.Context, in OrderInput) (*models.OutboxMessage, error) {
	if err := domain.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	addr, err := validators.ParseEmail(in.SupplierEmail)
	if err != nil {
		return nil, httperr.Validation("invalid_supplier_email", "Supplier email is not a valid address.")
	}
	if uc.checkDomain != nil && !uc.checkDomain(addr) {
		return nil, httperr.Validation("supplier_domain_unreachable", "Supplier email domain does not accept mail.")
	}

	item, err := uc.repo.FindByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}

	msg := &models.OutboxMessage{
		Kind:      models.MessageSupplierOrder,
		Recipient: addr,
		Subject:   "Stock Order Request: " + item.Name,
		Body: fmt.Sprintf(
			"Please supply %d %s of %s (part number %s).\nCurrent stock: %d.\n",
			in.Quantity, item.Unit, item.Name, item.PartNumber, item.Quantity,
		),
	}
	if err := uc.repo.Enqueue(ctx, msg); err != nil {
		return nil, err
	}

	outbox.Kick(uc.outbox)
	return msg, nil
}
