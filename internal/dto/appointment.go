package dto

import (
	"github.com/BruksfildServices01/service-center/internal/domain/costing"
	"github.com/BruksfildServices01/service-center/internal/models"
)

// AppointmentDTO adds display-rounded totals next to the full precision
// amounts.
type AppointmentDTO struct {
	models.Appointment

	DisplaySubtotal  *string `json:"display_subtotal,omitempty"`
	DisplayFinalCost *string `json:"display_final_cost,omitempty"`
}

func NewAppointmentDTO(ap *models.Appointment) AppointmentDTO {
	out := AppointmentDTO{Appointment: *ap}
	if out.Parts == nil {
		out.Parts = []models.AppointmentPart{}
	}
	if out.Labor == nil {
		out.Labor = []models.LaborItem{}
	}
	if ap.Subtotal.Valid {
		s := costing.Display(ap.Subtotal.Decimal)
		out.DisplaySubtotal = &s
	}
	if ap.FinalCost.Valid {
		s := costing.Display(ap.FinalCost.Decimal)
		out.DisplayFinalCost = &s
	}
	return out
}

type InventoryItemDTO struct {
	models.InventoryItem

	LowStock bool `json:"low_stock"`
}

func NewInventoryItemDTO(item *models.InventoryItem) InventoryItemDTO {
	return InventoryItemDTO{InventoryItem: *item, LowStock: item.IsLowStock()}
}

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func NewList[T any](data []T) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return ListResponse[T]{Data: data, Total: len(data)}
}

type SettingsDTO struct {
	OffPeakDays []string `json:"off_peak_days"`
}
