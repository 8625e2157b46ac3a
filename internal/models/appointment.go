package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index;not null" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	VehicleID uint    `gorm:"not null" json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	MechanicID *uint `gorm:"index" json:"mechanic_id"`
	Mechanic   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ServiceType string `gorm:"size:100;not null" json:"service_type"`
	Notes       string `gorm:"size:255" json:"notes"`

	ServiceDate string `gorm:"size:10;not null" json:"service_date"`
	TimeSlot    string `gorm:"size:5;not null" json:"time_slot"`

	// SlotKey is "date time" while the appointment occupies its slot and
	// NULL once canceled. The unique index is the booking guard.
	SlotKey *string `gorm:"size:16;uniqueIndex" json:"-"`

	Status           string `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	DiscountEligible bool   `json:"discount_eligible"`

	Parts []AppointmentPart `gorm:"constraint:OnDelete:CASCADE;" json:"parts_used"`
	Labor []LaborItem       `gorm:"constraint:OnDelete:CASCADE;" json:"labor_items"`

	Subtotal  decimal.NullDecimal `gorm:"type:numeric" json:"subtotal"`
	FinalCost decimal.NullDecimal `gorm:"type:numeric" json:"final_cost"`

	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	CanceledAt *time.Time `json:"canceled_at"`

	Revision int `gorm:"not null" json:"revision"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentPart keeps item name and sale price as they were at use time,
// so later edits or deletion of the inventory item do not touch it.
type AppointmentPart struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index;not null" json:"-"`

	InventoryItemID uint            `gorm:"not null" json:"inventory_item_id"`
	ItemName        string          `gorm:"size:100;not null" json:"item_name"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric;not null" json:"unit_price"`
	Position        int             `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

type LaborItem struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index;not null" json:"-"`

	Description string          `gorm:"size:255;not null" json:"description"`
	Cost        decimal.Decimal `gorm:"type:numeric;not null" json:"cost"`
	Position    int             `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
