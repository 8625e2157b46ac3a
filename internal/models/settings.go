package models

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsID is the primary key of the only settings row.
const SettingsID = 1

type Settings struct {
	ID          uint                        `gorm:"primaryKey;autoIncrement:false" json:"-"`
	OffPeakDays datatypes.JSONSlice[string] `json:"off_peak_days"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}
