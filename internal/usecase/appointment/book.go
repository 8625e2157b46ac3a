package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/domain/settings"
	vehicleDomain "github.com/BruksfildServices01/service-center/internal/domain/vehicle"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
	"github.com/BruksfildServices01/service-center/internal/outbox"
	"github.com/BruksfildServices01/service-center/internal/timezone"
	"github.com/BruksfildServices01/service-center/internal/validators"
)

// IdempotencyStore lets a customer retry a booking request safely.
type IdempotencyStore interface {
	Claim(ctx context.Context, customerID uint, key string) (claimed bool, existingID uint, err error)
	Complete(ctx context.Context, customerID uint, key string, appointmentID uint) error
	Release(ctx context.Context, customerID uint, key string) error
}

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	Caller domain.Caller

	VehicleID   uint
	ServiceType string
	Notes       string

	Date string
	Time string

	IdempotencyKey string
}

type BookConfig struct {
	SlotGranularityMinutes int
	Location               *time.Location

	// Optional. Without it Idempotency-Key is ignored.
	Idempotency IdempotencyStore
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	lifecycle
	settings settings.Repository
	cfg      BookConfig
}

func NewBookAppointment(
	repo domain.Repository,
	settingsRepo settings.Repository,
	sink audit.Sink,
	kicker outbox.Kicker,
	cfg BookConfig,
) *BookAppointment {
	if cfg.SlotGranularityMinutes <= 0 {
		cfg.SlotGranularityMinutes = 30
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &BookAppointment{
		lifecycle: newLifecycle(repo, sink, kicker),
		settings:  settingsRepo,
		cfg:       cfg,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Caller and input
	// --------------------------------------------------
	if !in.Caller.Is(models.RoleCustomer) {
		return nil, httperr.UnauthorizedErr("not_customer", "Only customers can book appointments.")
	}

	serviceType := strings.TrimSpace(in.ServiceType)
	if serviceType == "" {
		return nil, httperr.Validation("service_type_required", "Service type is required.")
	}
	if in.VehicleID == 0 {
		return nil, httperr.Validation("vehicle_required", "Vehicle is required.")
	}
	notes := strings.TrimSpace(in.Notes)
	if err := validators.CheckLength("service_type", serviceType, validators.MaxServiceType); err != nil {
		return nil, err
	}
	if err := validators.CheckLength("notes", notes, validators.MaxNotes); err != nil {
		return nil, err
	}
	in.Notes = notes

	date, slot, err := uc.parseSlot(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Idempotent replay
	// --------------------------------------------------
	idem := uc.cfg.Idempotency
	key := strings.TrimSpace(in.IdempotencyKey)
	if idem == nil || key == "" {
		idem, key = nil, ""
	}

	if idem != nil {
		claimed, existingID, err := idem.Claim(ctx, in.Caller.UserID, key)
		switch {
		case err != nil:
			logrus.WithError(err).Warn("booking idempotency unavailable, continuing without it")
			idem = nil
		case !claimed && existingID != 0:
			return uc.repo.FindByID(ctx, existingID)
		case !claimed:
			return nil, httperr.Conflict("request_in_progress", "A booking with this Idempotency-Key is still being processed.")
		}
	}

	ap, err := uc.book(ctx, in, serviceType, date, slot)

	if idem != nil {
		if err != nil {
			if rerr := idem.Release(ctx, in.Caller.UserID, key); rerr != nil {
				logrus.WithError(rerr).Warn("release booking idempotency key")
			}
		} else if cerr := idem.Complete(ctx, in.Caller.UserID, key, ap.ID); cerr != nil {
			logrus.WithError(cerr).Warn("store booking idempotency key")
		}
	}

	return ap, err
}

func (uc *BookAppointment) book(
	ctx context.Context,
	in BookAppointmentInput,
	serviceType string,
	date time.Time,
	slot string,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 3. Vehicle ownership
	// --------------------------------------------------
	vehicle, err := uc.repo.FindVehicle(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != in.Caller.UserID {
		return nil, vehicleDomain.NotOwner()
	}

	customer, err := uc.repo.FindUser(ctx, in.Caller.UserID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Discount eligibility from a fresh snapshot
	// --------------------------------------------------
	snap, err := uc.settings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	eligible := settings.IsOffPeak(date, snap)

	// --------------------------------------------------
	// 5. Persist with the slot guard
	// --------------------------------------------------
	serviceDate := date.Format(timezone.DateLayout)
	slotKey := domain.SlotKey(serviceDate, slot)

	ap := &models.Appointment{
		CustomerID:       in.Caller.UserID,
		VehicleID:        vehicle.ID,
		ServiceType:      serviceType,
		Notes:            strings.TrimSpace(in.Notes),
		ServiceDate:      serviceDate,
		TimeSlot:         slot,
		SlotKey:          &slotKey,
		Status:           string(domain.InitialStatus()),
		DiscountEligible: eligible,
	}

	confirmation := &models.OutboxMessage{
		Kind:      models.MessageBookingConfirmed,
		Recipient: customer.Email,
		Subject:   "Your Appointment is Confirmed!",
		Body:      bookingBody(customer, vehicle, ap),
	}

	if err := uc.repo.Create(ctx, ap, confirmation); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. After commit
	// --------------------------------------------------
	outbox.Kick(uc.outbox)
	uc.record(in.Caller, audit.ActionAppointmentBooked, ap, map[string]any{
		"service_date":      ap.ServiceDate,
		"time_slot":         ap.TimeSlot,
		"discount_eligible": ap.DiscountEligible,
	})

	return ap, nil
}

// parseSlot validates the date and slot tokens and returns them in
// canonical form.
func (uc *BookAppointment) parseSlot(date, slot string) (time.Time, string, error) {
	d, err := timezone.ParseDate(strings.TrimSpace(date), uc.cfg.Location)
	if err != nil {
		return time.Time{}, "", httperr.Validation("invalid_date", "Date must be YYYY-MM-DD.")
	}

	minutes, err := timezone.ParseSlot(strings.TrimSpace(slot))
	if err != nil {
		return time.Time{}, "", httperr.Validation("invalid_time", "Time must be HH:MM.")
	}
	if minutes%uc.cfg.SlotGranularityMinutes != 0 {
		return time.Time{}, "", httperr.WithDetails(
			httperr.KindValidation,
			"unaligned_time_slot",
			fmt.Sprintf("Time must be aligned to %d minute slots.", uc.cfg.SlotGranularityMinutes),
			map[string]any{"granularity_minutes": uc.cfg.SlotGranularityMinutes},
		)
	}

	return d, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

func bookingBody(customer *models.User, vehicle *models.Vehicle, ap *models.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", customer.Name)
	fmt.Fprintf(&b, "Your %s appointment is booked for %s at %s.\n", ap.ServiceType, ap.ServiceDate, ap.TimeSlot)
	fmt.Fprintf(&b, "Vehicle: %s %s (%s)\n", vehicle.Make, vehicle.Model, vehicle.RegistrationNumber)
	if ap.DiscountEligible {
		b.WriteString("This is an off-peak day: a 5% discount will be applied to your final invoice.\n")
	}
	return b.String()
}
