package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, caller domain.Caller, appointmentID uint) (*models.Appointment, error) {
	ap, err := uc.repo.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !domain.CanView(caller, ap) {
		return nil, httperr.UnauthorizedErr("not_visible", "Caller may not view this appointment.")
	}
	return ap, nil
}
