package models

import "time"

const (
	RoleCustomer = "Customer"
	RoleMechanic = "Mechanic"
	RoleManager  = "Manager"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`
	Role  string `gorm:"size:20;not null;default:'Customer'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
