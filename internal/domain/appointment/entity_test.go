package appointment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

func TestAssign(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}

	err := Assign(ap, &models.User{ID: 5, Role: models.RoleCustomer})
	assert.True(t, httperr.IsBusiness(err, "mechanic_not_found"))

	err = Assign(ap, nil)
	assert.True(t, httperr.IsBusiness(err, "mechanic_not_found"))

	require.NoError(t, Assign(ap, &models.User{ID: 7, Role: models.RoleMechanic}))
	assert.Equal(t, uint(7), *ap.MechanicID)

	err = Assign(ap, &models.User{ID: 8, Role: models.RoleMechanic})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Equal(t, uint(7), *ap.MechanicID)
}

func TestAppendAndFinish(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	ap := &models.Appointment{ID: 3, Status: string(StatusInProgress), DiscountEligible: true}

	item := &models.InventoryItem{ID: 9, Name: "Brake Pad", SalePrice: decimal.RequireFromString("25.00")}
	part := AppendPart(ap, item, 2)
	assert.Equal(t, "Brake Pad", part.ItemName)
	assert.Equal(t, 0, part.Position)

	// later price changes do not touch the captured line
	item.SalePrice = decimal.RequireFromString("99")

	_, err := AppendLabor(ap, "   ", decimal.NewFromInt(1))
	assert.True(t, httperr.IsBusiness(err, "description_required"))
	_, err = AppendLabor(ap, "Brake service", decimal.NewFromInt(-1))
	assert.True(t, httperr.IsBusiness(err, "invalid_cost"))

	labor, err := AppendLabor(ap, " Brake service ", decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	assert.Equal(t, "Brake service", labor.Description)

	totals := Finish(ap, now)
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Equal(t, "142.50", ap.FinalCost.Decimal.StringFixed(2))
	assert.True(t, ap.Subtotal.Valid)
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, now, *ap.FinishedAt)
}

func TestCancelReleasesSlot(t *testing.T) {
	key := SlotKey("2024-06-10", "09:00")
	ap := &models.Appointment{Status: string(StatusScheduled), SlotKey: &key}

	Cancel(ap, time.Now())

	assert.Nil(t, ap.SlotKey)
	assert.Equal(t, string(StatusCanceled), ap.Status)
	assert.NotNil(t, ap.CanceledAt)
}
