package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/domain/vehicle"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type VehicleGormRepository struct {
	db *gorm.DB
}

func NewVehicleGormRepository(db *gorm.DB) *VehicleGormRepository {
	return &VehicleGormRepository{db: db}
}

func registrationTaken() error {
	return httperr.Conflict("registration_taken", "A vehicle with this registration number is already registered.")
}

func (r *VehicleGormRepository) Create(ctx context.Context, v *models.Vehicle) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return registrationTaken()
		}
		return httperr.Unavailable(err)
	}
	return nil
}

func (r *VehicleGormRepository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, lookup(err, "vehicle_not_found", "Vehicle not found.")
	}
	return &v, nil
}

func (r *VehicleGormRepository) Update(ctx context.Context, v *models.Vehicle) error {
	res := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ? AND owner_id = ?", v.ID, v.OwnerID).
		Updates(map[string]any{
			"make":                v.Make,
			"model":               v.Model,
			"year":                v.Year,
			"registration_number": v.RegistrationNumber,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return registrationTaken()
		}
		return httperr.Unavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("vehicle_not_found", "Vehicle not found.")
	}
	return nil
}

func (r *VehicleGormRepository) Delete(ctx context.Context, v *models.Vehicle) error {
	db := r.db.WithContext(ctx)

	active := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Appointment{}).
		Select("1").
		Where("appointments.vehicle_id = vehicles.id AND appointments.status <> ?", string(appointment.StatusCanceled))

	res := db.
		Where("id = ? AND owner_id = ?", v.ID, v.OwnerID).
		Where("NOT EXISTS (?)", active).
		Delete(&models.Vehicle{})
	if res.Error != nil {
		return httperr.Unavailable(res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// Nothing removed: tell a vanished vehicle from one still in use.
	if _, err := r.FindByID(ctx, v.ID); err != nil {
		return err
	}
	return vehicle.InUse()
}

// Compile-time check
var _ vehicle.Repository = (*VehicleGormRepository)(nil)
