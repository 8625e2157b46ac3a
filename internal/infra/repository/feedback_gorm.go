package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type FeedbackGormRepository struct {
	db *gorm.DB
}

func NewFeedbackGormRepository(db *gorm.DB) *FeedbackGormRepository {
	return &FeedbackGormRepository{db: db}
}

func (r *FeedbackGormRepository) FindAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, lookup(err, "appointment_not_found", "Appointment not found.")
	}
	return &ap, nil
}

// Create relies on the unique index on appointment_id to reject a second
// feedback for the same job.
func (r *FeedbackGormRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(fb).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.Conflict("feedback_exists", "Feedback already submitted for this appointment.")
		}
		return httperr.Unavailable(err)
	}
	return nil
}
