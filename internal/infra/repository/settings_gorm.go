package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/service-center/internal/domain/settings"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type SettingsGormRepository struct {
	db *gorm.DB
}

func NewSettingsGormRepository(db *gorm.DB) *SettingsGormRepository {
	return &SettingsGormRepository{db: db}
}

// Snapshot reads the settings row, inserting the default when absent.
// Concurrent first reads race on the insert; DO NOTHING keeps the winner.
func (r *SettingsGormRepository) Snapshot(ctx context.Context) (settings.Snapshot, error) {
	db := r.db.WithContext(ctx)

	row := models.Settings{
		ID:          models.SettingsID,
		OffPeakDays: append([]string(nil), settings.DefaultOffPeakDays...),
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return settings.Snapshot{}, httperr.Unavailable(err)
	}

	var current models.Settings
	if err := db.First(&current, models.SettingsID).Error; err != nil {
		return settings.Snapshot{}, httperr.Unavailable(err)
	}

	return settings.NewSnapshot(current.OffPeakDays), nil
}

// Replace stores days, which must already be normalized.
func (r *SettingsGormRepository) Replace(ctx context.Context, days []string) (settings.Snapshot, error) {
	row := models.Settings{
		ID:          models.SettingsID,
		OffPeakDays: days,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"off_peak_days", "updated_at"}),
		}).
		Create(&row).Error; err != nil {
		return settings.Snapshot{}, httperr.Unavailable(err)
	}

	return settings.NewSnapshot(days), nil
}

// Compile-time check
var _ settings.Repository = (*SettingsGormRepository)(nil)
