package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-center/internal/db/dbtest"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

func TestReserve_InsufficientKeepsQuantity(t *testing.T) {
	db := dbtest.New(t)
	repo := NewInventoryGormRepository(db)
	item := dbtest.Item(t, db, "Spark Plug", 1, "8.00")

	_, err := repo.Reserve(context.Background(), item.ID, 2)
	require.Error(t, err)

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, httperr.KindInsufficientStock, be.Kind)
	assert.Equal(t, "Spark Plug", be.Details["item"])
	assert.Equal(t, 1, be.Details["remaining"])
	assert.Equal(t, 2, be.Details["requested"])

	assert.Equal(t, 1, dbtest.Quantity(t, db, item.ID))
}

func TestReserve_ConcurrentLastUnit(t *testing.T) {
	db := dbtest.New(t)
	repo := NewInventoryGormRepository(db)
	item := dbtest.Item(t, db, "Oil Filter", 1, "12.00")

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Reserve(context.Background(), item.ID, 1)
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	ok, short := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsKind(err, httperr.KindInsufficientStock):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, short)
	assert.Equal(t, 0, dbtest.Quantity(t, db, item.ID))
}

func TestReserve_UnknownItemAndBadQuantity(t *testing.T) {
	repo := NewInventoryGormRepository(dbtest.New(t))
	ctx := context.Background()

	_, err := repo.Reserve(ctx, 999, 1)
	assert.True(t, httperr.IsBusiness(err, "item_not_found"))

	_, err = repo.Reserve(ctx, 1, 0)
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
}

func TestReceiveAndLowStock(t *testing.T) {
	db := dbtest.New(t)
	repo := NewInventoryGormRepository(db)
	ctx := context.Background()

	low := dbtest.Item(t, db, "Wiper Blade", 2, "15.00")
	dbtest.Item(t, db, "Air Filter", 20, "18.00")

	items, err := repo.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, low.ID, items[0].ID)

	got, err := repo.Receive(ctx, low.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)

	items, err = repo.LowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = repo.Receive(ctx, 999, 1)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestInventoryUpdate_NeverWritesQuantity(t *testing.T) {
	db := dbtest.New(t)
	repo := NewInventoryGormRepository(db)
	ctx := context.Background()
	item := dbtest.Item(t, db, "Coolant", 7, "9.00")

	item.Quantity = 100
	item.Supplier = "Fluids Inc"
	require.NoError(t, repo.Update(ctx, item))

	got, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
	assert.Equal(t, "Fluids Inc", got.Supplier)
}

func TestInventoryCreate_DuplicateName(t *testing.T) {
	db := dbtest.New(t)
	repo := NewInventoryGormRepository(db)
	dbtest.Item(t, db, "Battery", 1, "90.00")

	err := repo.Create(context.Background(), &models.InventoryItem{Name: "Battery", Unit: models.DefaultUnit})
	assert.True(t, httperr.IsBusiness(err, "item_name_taken"))
}
