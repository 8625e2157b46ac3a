package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultLowStockThreshold = 5
	DefaultUnit              = "units"
)

type InventoryItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	PartNumber string `gorm:"size:50" json:"part_number"`
	Supplier   string `gorm:"size:100" json:"supplier"`
	Unit       string `gorm:"size:20;not null" json:"unit"`

	Quantity          int `gorm:"not null;check:quantity >= 0" json:"quantity"`
	LowStockThreshold int `gorm:"not null" json:"low_stock_threshold"`

	CostPrice decimal.Decimal `gorm:"type:numeric;not null" json:"cost_price"`
	SalePrice decimal.Decimal `gorm:"type:numeric;not null" json:"sale_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}
