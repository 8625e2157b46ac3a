package inventory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/inventory"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
	"github.com/BruksfildServices01/service-center/internal/validators"
)

// ItemInput carries the administrable fields of an item. Nil fields are
// left unchanged on update and defaulted on create.
type ItemInput struct {
	Name              *string
	PartNumber        *string
	Supplier          *string
	Unit              *string
	Quantity          *int
	CostPrice         *decimal.Decimal
	SalePrice         *decimal.Decimal
	LowStockThreshold *int
}

type Service struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewService(repo domain.Repository, sink audit.Sink) *Service {
	if sink == nil {
		sink = audit.Discard
	}
	return &Service{repo: repo, audit: sink}
}

func (s *Service) Create(ctx context.Context, in ItemInput) (*models.InventoryItem, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, httperr.Validation("name_required", "Item name is required.")
	}

	item := &models.InventoryItem{
		Unit:              models.DefaultUnit,
		LowStockThreshold: models.DefaultLowStockThreshold,
		CostPrice:         decimal.Zero,
		SalePrice:         decimal.Zero,
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, httperr.Validation("invalid_quantity", "Quantity cannot be negative.")
		}
		item.Quantity = *in.Quantity
	}
	if err := apply(item, in); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.InventoryItem, error) {
	return s.repo.FindByID(ctx, id)
}

// Update never touches quantity; stock moves only through the ledger.
func (s *Service) Update(ctx context.Context, id uint, in ItemInput) (*models.InventoryItem, error) {
	if in.Quantity != nil {
		return nil, httperr.Validation("quantity_read_only", "Quantity changes only through receive or part usage.")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(item, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Receive(ctx context.Context, actorID uint, id uint, qty int) (*models.InventoryItem, error) {
	item, err := s.repo.Receive(ctx, id, qty)
	if err != nil {
		return nil, err
	}

	itemID := item.ID
	s.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Role:     models.RoleManager,
		Action:   audit.ActionStockReceived,
		Entity:   "inventory_item",
		EntityID: &itemID,
		Metadata: map[string]any{"quantity": qty, "on_hand": item.Quantity},
	})

	return item, nil
}

func (s *Service) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	return s.repo.LowStock(ctx)
}

func apply(item *models.InventoryItem, in ItemInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return httperr.Validation("name_required", "Item name is required.")
		}
		if err := validators.CheckLength("name", name, validators.MaxItemName); err != nil {
			return err
		}
		item.Name = name
	}
	if in.PartNumber != nil {
		pn := strings.TrimSpace(*in.PartNumber)
		if err := validators.CheckLength("part_number", pn, validators.MaxPartNumber); err != nil {
			return err
		}
		item.PartNumber = pn
	}
	if in.Supplier != nil {
		supplier := strings.TrimSpace(*in.Supplier)
		if err := validators.CheckLength("supplier", supplier, validators.MaxSupplier); err != nil {
			return err
		}
		item.Supplier = supplier
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" {
		unit := strings.TrimSpace(*in.Unit)
		if err := validators.CheckLength("unit", unit, validators.MaxUnit); err != nil {
			return err
		}
		item.Unit = unit
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return httperr.Validation("invalid_cost_price", "Cost price cannot be negative.")
		}
		item.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return httperr.Validation("invalid_sale_price", "Sale price cannot be negative.")
		}
		item.SalePrice = *in.SalePrice
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return httperr.Validation("invalid_threshold", "Low stock threshold cannot be negative.")
		}
		item.LowStockThreshold = *in.LowStockThreshold
	}
	return nil
}
