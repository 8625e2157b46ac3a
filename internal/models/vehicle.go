package models

import (
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Make  string `gorm:"size:60;not null" json:"make"`
	Model string `gorm:"size:60;not null" json:"model"`
	Year  int    `gorm:"not null" json:"year"`

	// Unique among vehicles that have not been removed.
	RegistrationNumber string `gorm:"size:20;not null;uniqueIndex:idx_vehicles_registration,where:deleted_at IS NULL" json:"registration_number"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
