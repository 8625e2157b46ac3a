package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-center/internal/domain/inventory"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *InventoryGormRepository) Reserve(
	ctx context.Context,
	itemID uint,
	qty int,
) (_ *models.InventoryItem, err error) {

	if err := inventory.ValidateQuantity(qty); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "inventory.reserve",
		trace.WithAttributes(
			attribute.Int64("item.id", int64(itemID)),
			attribute.Int("requested", qty),
		),
	)
	defer func() { endSpan(span, err) }()

	var item models.InventoryItem

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InventoryItem{}).
			Where("id = ? AND quantity >= ?", itemID, qty).
			Update("quantity", gorm.Expr("quantity - ?", qty))
		if res.Error != nil {
			return res.Error
		}

		if err := tx.First(&item, itemID).Error; err != nil {
			return lookup(err, "item_not_found", "Inventory item not found.")
		}

		if res.RowsAffected == 0 {
			return inventory.InsufficientStock(&item, qty)
		}
		return nil
	})
	if err != nil {
		return nil, httperr.Unavailable(err)
	}

	span.SetAttributes(attribute.Int("remaining", item.Quantity))
	if item.IsLowStock() {
		logrus.WithFields(logrus.Fields{
			"item_id":   item.ID,
			"item":      item.Name,
			"remaining": item.Quantity,
			"threshold": item.LowStockThreshold,
		}).Warn("inventory item at or below low stock threshold")
	}

	return &item, nil
}

func (r *InventoryGormRepository) Receive(
	ctx context.Context,
	itemID uint,
	qty int,
) (*models.InventoryItem, error) {

	if err := inventory.ValidateQuantity(qty); err != nil {
		return nil, err
	}

	var item models.InventoryItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InventoryItem{}).
			Where("id = ?", itemID).
			Update("quantity", gorm.Expr("quantity + ?", qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.NotFoundErr("item_not_found", "Inventory item not found.")
		}
		return tx.First(&item, itemID).Error
	})
	if err != nil {
		return nil, httperr.Unavailable(err)
	}

	return &item, nil
}

func (r *InventoryGormRepository) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("quantity <= low_stock_threshold").
		Order("quantity ASC, name ASC").
		Find(&items).Error; err != nil {
		return nil, httperr.Unavailable(err)
	}
	return items, nil
}

// --------------------------------------------------
// Administration
// --------------------------------------------------

func (r *InventoryGormRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.Conflict("item_name_taken", "An inventory item with this name already exists.")
		}
		return httperr.Unavailable(err)
	}
	return nil
}

func (r *InventoryGormRepository) FindByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, lookup(err, "item_not_found", "Inventory item not found.")
	}
	return &item, nil
}

func (r *InventoryGormRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":                item.Name,
			"part_number":         item.PartNumber,
			"supplier":            item.Supplier,
			"unit":                item.Unit,
			"cost_price":          item.CostPrice,
			"sale_price":          item.SalePrice,
			"low_stock_threshold": item.LowStockThreshold,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return httperr.Conflict("item_name_taken", "An inventory item with this name already exists.")
		}
		return httperr.Unavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("item_not_found", "Inventory item not found.")
	}
	return nil
}

// Delete removes the item. Recorded parts keep their captured name and
// price.
func (r *InventoryGormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.InventoryItem{}, id)
	if res.Error != nil {
		return httperr.Unavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("item_not_found", "Inventory item not found.")
	}
	return nil
}

func (r *InventoryGormRepository) Enqueue(ctx context.Context, msg *models.OutboxMessage) error {
	return httperr.Unavailable(NewOutboxGormRepository(r.db).Enqueue(ctx, msg))
}

// Compile-time check
var _ inventory.Repository = (*InventoryGormRepository)(nil)
