package inventory

import (
	"context"

	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

// Ledger is the only way on-hand quantities change.
type Ledger interface {
	// Reserve decrements the item by qty if at least qty is on hand and
	// returns the item after the decrement. Check and decrement are one
	// atomic step.
	Reserve(ctx context.Context, itemID uint, qty int) (*models.InventoryItem, error)

	Receive(ctx context.Context, itemID uint, qty int) (*models.InventoryItem, error)

	LowStock(ctx context.Context) ([]models.InventoryItem, error)
}

type Repository interface {
	Ledger

	Create(ctx context.Context, item *models.InventoryItem) error
	FindByID(ctx context.Context, id uint) (*models.InventoryItem, error)

	// Update writes descriptive fields and prices. Quantity is never written.
	Update(ctx context.Context, item *models.InventoryItem) error

	Delete(ctx context.Context, id uint) error

	Enqueue(ctx context.Context, msg *models.OutboxMessage) error
}

func ValidateQuantity(qty int) error {
	if qty <= 0 {
		return httperr.Validation("invalid_quantity", "Quantity must be a positive integer.")
	}
	return nil
}

func InsufficientStock(item *models.InventoryItem, requested int) error {
	return httperr.WithDetails(
		httperr.KindInsufficientStock,
		"insufficient_stock",
		"Insufficient stock for "+item.Name+".",
		map[string]any{
			"item_id":   item.ID,
			"item":      item.Name,
			"remaining": item.Quantity,
			"requested": requested,
		},
	)
}
