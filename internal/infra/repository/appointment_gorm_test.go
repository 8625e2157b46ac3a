package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-center/internal/db/dbtest"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

func newAppointment(t *testing.T, db *gorm.DB, date, slot string) *models.Appointment {
	t.Helper()

	customer := dbtest.User(t, db, models.RoleCustomer)
	vehicle := dbtest.Vehicle(t, db, customer)
	key := domain.SlotKey(date, slot)

	return &models.Appointment{
		CustomerID:  customer.ID,
		VehicleID:   vehicle.ID,
		ServiceType: "Oil Change",
		ServiceDate: date,
		TimeSlot:    slot,
		SlotKey:     &key,
		Status:      string(domain.StatusScheduled),
	}
}

func TestAppointmentCreate_SlotTaken(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	first := newAppointment(t, db, "2024-06-12", "09:00")
	require.NoError(t, repo.Create(ctx, first, &models.OutboxMessage{
		Kind:      models.MessageBookingConfirmed,
		Recipient: "a@example.com",
		Subject:   "confirmed",
	}))

	second := newAppointment(t, db, "2024-06-12", "09:00")
	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var msgs []models.OutboxMessage
	require.NoError(t, db.Find(&msgs).Error)
	require.Len(t, msgs, 1)
	assert.Equal(t, first.ID, *msgs[0].AppointmentID)
	assert.Equal(t, models.OutboxPending, msgs[0].Status)
}

func TestAppointmentTransition_CancelReleasesSlot(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	first := newAppointment(t, db, "2024-06-12", "10:00")
	require.NoError(t, repo.Create(ctx, first))

	canceled, err := repo.Transition(ctx, first.ID, func(_ context.Context, _ domain.Tx, ap *models.Appointment) error {
		domain.Cancel(ap, time.Now())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, canceled.Revision)

	again := newAppointment(t, db, "2024-06-12", "10:00")
	assert.NoError(t, repo.Create(ctx, again))

	reloaded, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), reloaded.Status)
	assert.Nil(t, reloaded.SlotKey)
}

func TestAppointmentTransition_RollsBackOnError(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	ap := newAppointment(t, db, "2024-06-13", "11:00")
	require.NoError(t, repo.Create(ctx, ap))
	item := dbtest.Item(t, db, "Oil Filter", 3, "12.00")

	boom := errors.New("boom")
	_, err := repo.Transition(ctx, ap.ID, func(ctx context.Context, tx domain.Tx, ap *models.Appointment) error {
		if _, err := tx.Ledger().Reserve(ctx, item.ID, 2); err != nil {
			return err
		}
		ap.Status = string(domain.StatusInProgress)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 3, dbtest.Quantity(t, db, item.ID))
	reloaded, err := repo.FindByID(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), reloaded.Status)
	assert.Equal(t, 0, reloaded.Revision)
}

func TestAppointmentTransition_StaleRevision(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	ap := newAppointment(t, db, "2024-06-13", "12:00")
	require.NoError(t, repo.Create(ctx, ap))

	_, err := repo.Transition(ctx, ap.ID, func(ctx context.Context, tx domain.Tx, _ *models.Appointment) error {
		// a writer that bypassed the lock
		return tx.(*gormTx).db.Model(&models.Appointment{}).Where("id = ?", ap.ID).
			Update("revision", gorm.Expr("revision + 1")).Error
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "stale_revision"))
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
}

func TestAppointmentTransition_PersistsLineItemsInOrder(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	ap := newAppointment(t, db, "2024-06-14", "08:00")
	ap.Status = string(domain.StatusInProgress)
	require.NoError(t, repo.Create(ctx, ap))
	pad := dbtest.Item(t, db, "Brake Pad", 4, "25.00")
	disc := dbtest.Item(t, db, "Brake Disc", 4, "60.00")

	for _, it := range []*models.InventoryItem{disc, pad} {
		_, err := repo.Transition(ctx, ap.ID, func(ctx context.Context, tx domain.Tx, ap *models.Appointment) error {
			reserved, err := tx.Ledger().Reserve(ctx, it.ID, 1)
			if err != nil {
				return err
			}
			return tx.InsertPart(ctx, domain.AppendPart(ap, reserved, 1))
		})
		require.NoError(t, err)
	}

	got, err := repo.FindByID(ctx, ap.ID)
	require.NoError(t, err)
	require.Len(t, got.Parts, 2)
	assert.Equal(t, "Brake Disc", got.Parts[0].ItemName)
	assert.Equal(t, "Brake Pad", got.Parts[1].ItemName)
	assert.Equal(t, 2, got.Revision)
}

func TestAppointmentFindByID_NotFound(t *testing.T) {
	repo := NewAppointmentGormRepository(dbtest.New(t))

	_, err := repo.FindByID(context.Background(), 404)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
