package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-center/internal/models"
)

var seq atomic.Int64

func next() int64 { return seq.Add(1) }

// User inserts a user with the given role.
func User(t testing.TB, db *gorm.DB, role string) *models.User {
	t.Helper()

	n := next()
	u := &models.User{
		Name:  fmt.Sprintf("%s %d", role, n),
		Email: fmt.Sprintf("user%d@example.com", n),
		Role:  role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// Vehicle inserts a vehicle owned by owner.
func Vehicle(t testing.TB, db *gorm.DB, owner *models.User) *models.Vehicle {
	t.Helper()

	v := &models.Vehicle{
		OwnerID:            owner.ID,
		Make:               "Toyota",
		Model:              "Corolla",
		Year:               2019,
		RegistrationNumber: fmt.Sprintf("REG-%d", next()),
	}
	require.NoError(t, db.Create(v).Error)
	return v
}

// Item inserts an inventory item with qty on hand at salePrice.
func Item(t testing.TB, db *gorm.DB, name string, qty int, salePrice string) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		Name:              name,
		Unit:              models.DefaultUnit,
		Quantity:          qty,
		LowStockThreshold: models.DefaultLowStockThreshold,
		CostPrice:         decimal.Zero,
		SalePrice:         decimal.RequireFromString(salePrice),
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

// Quantity reads the on-hand quantity of an item.
func Quantity(t testing.TB, db *gorm.DB, itemID uint) int {
	t.Helper()

	var item models.InventoryItem
	require.NoError(t, db.First(&item, itemID).Error)
	return item.Quantity
}
