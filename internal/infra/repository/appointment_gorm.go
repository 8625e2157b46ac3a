package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/domain/inventory"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Referenced entities
// --------------------------------------------------

func (r *AppointmentGormRepository) FindUser(ctx context.Context, id uint) (*models.User, error) {
	return findUser(r.db.WithContext(ctx), id)
}

func (r *AppointmentGormRepository) FindVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, lookup(err, "vehicle_not_found", "Vehicle not found.")
	}
	return &v, nil
}

func findUser(db *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	if err := db.First(&u, id).Error; err != nil {
		return nil, lookup(err, "user_not_found", "User not found.")
	}
	return &u, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
	msgs ...*models.OutboxMessage,
) (err error) {

	ctx, span := tracer.Start(ctx, "appointment.create",
		trace.WithAttributes(
			attribute.String("appointment.date", ap.ServiceDate),
			attribute.String("appointment.slot", ap.TimeSlot),
		),
	)
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			if isUniqueViolation(err) {
				return httperr.WithDetails(
					httperr.KindConflict,
					"slot_taken",
					"The selected date and time slot is already booked.",
					map[string]any{"service_date": ap.ServiceDate, "time_slot": ap.TimeSlot},
				)
			}
			return err
		}

		outbox := NewOutboxGormRepository(tx)
		for _, m := range msgs {
			m.AppointmentID = &ap.ID
			if err := outbox.Enqueue(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})

	return httperr.Unavailable(err)
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return loadAppointment(r.db.WithContext(ctx), id)
}

func loadAppointment(db *gorm.DB, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	err := db.
		Preload("Parts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Labor", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&ap, id).Error
	if err != nil {
		return nil, lookup(err, "appointment_not_found", "Appointment not found.")
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) Transition(
	ctx context.Context,
	id uint,
	fn domain.TransitionFunc,
) (_ *models.Appointment, err error) {

	ctx, span := tracer.Start(ctx, "appointment.transition",
		trace.WithAttributes(attribute.Int64("appointment.id", int64(id))),
	)
	defer func() { endSpan(span, err) }()

	var out *models.Appointment

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ap, err := loadAppointment(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}

		revision := ap.Revision
		span.SetAttributes(
			attribute.String("appointment.status", ap.Status),
			attribute.Int("expected.revision", revision),
		)

		if err := fn(ctx, &gormTx{db: tx}, ap); err != nil {
			return err
		}

		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND revision = ?", ap.ID, revision).
			Updates(map[string]any{
				"mechanic_id": ap.MechanicID,
				"status":      ap.Status,
				"slot_key":    ap.SlotKey,
				"subtotal":    ap.Subtotal,
				"final_cost":  ap.FinalCost,
				"started_at":  ap.StartedAt,
				"finished_at": ap.FinishedAt,
				"canceled_at": ap.CanceledAt,
				"revision":    revision + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			span.SetAttributes(attribute.Bool("conflict.detected", true))
			return httperr.InvalidTransition("stale_revision", "Appointment changed concurrently; reload and retry.")
		}

		ap.Revision = revision + 1
		out = ap
		return nil
	})
	if err != nil {
		return nil, httperr.Unavailable(err)
	}

	span.SetAttributes(attribute.String("appointment.status.new", out.Status))
	return out, nil
}

// gormTx binds the per-transition writes to the open transaction.
type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) Ledger() inventory.Ledger {
	return NewInventoryGormRepository(t.db)
}

func (t *gormTx) FindUser(ctx context.Context, id uint) (*models.User, error) {
	return findUser(t.db.WithContext(ctx), id)
}

func (t *gormTx) InsertPart(ctx context.Context, part *models.AppointmentPart) error {
	return t.db.WithContext(ctx).Create(part).Error
}

func (t *gormTx) InsertLabor(ctx context.Context, item *models.LaborItem) error {
	return t.db.WithContext(ctx).Create(item).Error
}

func (t *gormTx) Enqueue(ctx context.Context, msg *models.OutboxMessage) error {
	return NewOutboxGormRepository(t.db).Enqueue(ctx, msg)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
