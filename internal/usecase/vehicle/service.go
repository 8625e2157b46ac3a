package vehicle

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/service-center/internal/audit"
	"github.com/BruksfildServices01/service-center/internal/domain/appointment"
	domain "github.com/BruksfildServices01/service-center/internal/domain/vehicle"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
	"github.com/BruksfildServices01/service-center/internal/validators"
)

// VehicleInput carries the editable fields. Nil fields are left unchanged on
// update and required on register.
type VehicleInput struct {
	Make               *string
	Model              *string
	Year               *int
	RegistrationNumber *string
}

type Service struct {
	repo  domain.Repository
	audit audit.Sink
	now   func() time.Time
}

func NewService(repo domain.Repository, sink audit.Sink) *Service {
	if sink == nil {
		sink = audit.Discard
	}
	return &Service{repo: repo, audit: sink, now: time.Now}
}

func (s *Service) Register(ctx context.Context, caller appointment.Caller, in VehicleInput) (*models.Vehicle, error) {
	if !caller.Is(models.RoleCustomer) {
		return nil, httperr.UnauthorizedErr("not_customer", "Only customers can register vehicles.")
	}
	if in.Make == nil || in.Model == nil || in.Year == nil || in.RegistrationNumber == nil {
		return nil, httperr.Validation("vehicle_details_required", "Make, model, year and registration number are required.")
	}

	v := &models.Vehicle{OwnerID: caller.UserID}
	if err := s.apply(v, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.record(caller, audit.ActionVehicleRegistered, v)
	return v, nil
}

func (s *Service) Get(ctx context.Context, caller appointment.Caller, id uint) (*models.Vehicle, error) {
	return s.owned(ctx, caller, id)
}

func (s *Service) Update(ctx context.Context, caller appointment.Caller, id uint, in VehicleInput) (*models.Vehicle, error) {
	v, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(v, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	s.record(caller, audit.ActionVehicleUpdated, v)
	return v, nil
}

// Remove refuses while the vehicle still has appointments that are not
// canceled.
func (s *Service) Remove(ctx context.Context, caller appointment.Caller, id uint) error {
	v, err := s.owned(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, v); err != nil {
		return err
	}

	s.record(caller, audit.ActionVehicleRemoved, v)
	return nil
}

func (s *Service) owned(ctx context.Context, caller appointment.Caller, id uint) (*models.Vehicle, error) {
	if !caller.Is(models.RoleCustomer) {
		return nil, httperr.UnauthorizedErr("not_customer", "Only customers manage vehicles.")
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != caller.UserID {
		return nil, domain.NotOwner()
	}
	return v, nil
}

func (s *Service) apply(v *models.Vehicle, in VehicleInput) error {
	if in.Make != nil {
		mk := strings.TrimSpace(*in.Make)
		if mk == "" {
			return httperr.Validation("make_required", "Make is required.")
		}
		if err := validators.CheckLength("make", mk, validators.MaxVehicleMake); err != nil {
			return err
		}
		v.Make = mk
	}
	if in.Model != nil {
		model := strings.TrimSpace(*in.Model)
		if model == "" {
			return httperr.Validation("model_required", "Model is required.")
		}
		if err := validators.CheckLength("model", model, validators.MaxVehicleModel); err != nil {
			return err
		}
		v.Model = model
	}
	if in.Year != nil {
		if err := domain.ValidateYear(*in.Year, s.now().Year()); err != nil {
			return err
		}
		v.Year = *in.Year
	}
	if in.RegistrationNumber != nil {
		reg := domain.NormalizeRegistration(*in.RegistrationNumber)
		if reg == "" {
			return httperr.Validation("registration_required", "Registration number is required.")
		}
		if err := validators.CheckLength("registration_number", reg, validators.MaxRegistration); err != nil {
			return err
		}
		v.RegistrationNumber = reg
	}
	return nil
}

func (s *Service) record(caller appointment.Caller, action string, v *models.Vehicle) {
	userID, vehicleID := caller.UserID, v.ID
	s.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Role:     caller.Role,
		Action:   action,
		Entity:   "vehicle",
		EntityID: &vehicleID,
		Metadata: map[string]any{"registration_number": v.RegistrationNumber},
	})
}
