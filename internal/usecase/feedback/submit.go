package feedback

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
	"github.com/BruksfildServices01/service-center/internal/validators"
)

type Repository interface {
	FindAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	Create(ctx context.Context, fb *models.Feedback) error
}

type SubmitFeedbackInput struct {
	Caller        domain.Caller
	AppointmentID uint
	Rating        int
	Comment       string
}

type SubmitFeedback struct {
	repo  Repository
	audit audit.Sink
}

func NewSubmitFeedback(repo Repository, sink audit.Sink) *SubmitFeedback {
	if sink == nil {
		sink = audit.Discard
	}
	return &SubmitFeedback{repo: repo, audit: sink}
}

func (uc *SubmitFeedback) Execute(ctx context.Context, in SubmitFeedbackInput) (*models.Feedback, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.Validation("invalid_rating", "Rating must be between 1 and 5.")
	}
	comment := strings.TrimSpace(in.Comment)
	if err := validators.CheckLength("comment", comment, validators.MaxFeedbackComment); err != nil {
		return nil, err
	}

	ap, err := uc.repo.FindAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if ap.CustomerID != in.Caller.UserID {
		// Other customers' appointments are not disclosed.
		return nil, httperr.NotFoundErr("appointment_not_found", "Appointment not found.")
	}
	if domain.Status(ap.Status) != domain.StatusCompleted {
		return nil, httperr.InvalidTransition("not_completed", "Feedback is accepted only for completed appointments.")
	}

	fb := &models.Feedback{
		AppointmentID: ap.ID,
		CustomerID:    ap.CustomerID,
		MechanicID:    ap.MechanicID,
		Rating:        in.Rating,
		Comment:       comment,
	}
	if err := uc.repo.Create(ctx, fb); err != nil {
		return nil, err
	}

	userID := in.Caller.UserID
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Role:     in.Caller.Role,
		Action:   audit.ActionFeedbackSubmitted,
		Entity:   "appointment",
		EntityID: &fb.AppointmentID,
		Metadata: map[string]any{"rating": in.Rating},
	})

	return fb, nil
}
