package models

import "time"

type Feedback struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	CustomerID uint  `gorm:"index;not null" json:"customer_id"`
	MechanicID *uint `json:"mechanic_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:1000" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
