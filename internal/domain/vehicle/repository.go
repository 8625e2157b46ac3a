package vehicle

import (
	"context"

	"github.com/BruksfildServices01/service-center/internal/models"
)

type Repository interface {
	// Create fails with a conflict when the registration number is taken.
	Create(ctx context.Context, v *models.Vehicle) error
	FindByID(ctx context.Context, id uint) (*models.Vehicle, error)

	// Update writes make, model, year and registration number.
	Update(ctx context.Context, v *models.Vehicle) error

	// Delete removes v unless an appointment that is not canceled still
	// references it. The check and the removal are one statement.
	Delete(ctx context.Context, v *models.Vehicle) error
}
