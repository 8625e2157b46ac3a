package appointment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-center/internal/domain/costing"
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
	"github.com/BruksfildServices01/service-center/internal/validators"
)

// SlotKey is the occupancy key of a date and time slot.
func SlotKey(date, slot string) string {
	return date + " " + slot
}

// ===============================
// Domain Actions
// ===============================

func Assign(ap *models.Appointment, mechanic *models.User) error {
	if mechanic == nil || mechanic.Role != models.RoleMechanic {
		return httperr.NotFoundErr("mechanic_not_found", "Mechanic not found or user is not a mechanic.")
	}
	if ap.MechanicID != nil {
		return httperr.Conflict("already_assigned", "Appointment already has a mechanic assigned.")
	}

	id := mechanic.ID
	ap.MechanicID = &id
	return nil
}

func Start(ap *models.Appointment, now time.Time) {
	ap.Status = string(StatusInProgress)
	ap.StartedAt = &now
}

// AppendPart records qty units of item at its current sale price. The
// returned pointer is valid until the next append.
func AppendPart(ap *models.Appointment, item *models.InventoryItem, qty int) *models.AppointmentPart {
	part := models.AppointmentPart{
		AppointmentID:   ap.ID,
		InventoryItemID: item.ID,
		ItemName:        item.Name,
		Quantity:        qty,
		UnitPrice:       item.SalePrice,
		Position:        len(ap.Parts),
	}
	ap.Parts = append(ap.Parts, part)
	return &ap.Parts[len(ap.Parts)-1]
}

func AppendLabor(ap *models.Appointment, description string, cost decimal.Decimal) (*models.LaborItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, httperr.Validation("description_required", "Labor description is required.")
	}
	if err := validators.CheckLength("description", description, validators.MaxLaborDescription); err != nil {
		return nil, err
	}
	if cost.IsNegative() {
		return nil, httperr.Validation("invalid_cost", "Labor cost cannot be negative.")
	}

	item := models.LaborItem{
		AppointmentID: ap.ID,
		Description:   description,
		Cost:          cost,
		Position:      len(ap.Labor),
	}
	ap.Labor = append(ap.Labor, item)
	return &ap.Labor[len(ap.Labor)-1], nil
}

// Finish sets the totals. Status guards keep it from running twice.
func Finish(ap *models.Appointment, now time.Time) costing.Totals {
	totals := costing.Compute(ap.Parts, ap.Labor, ap.DiscountEligible)

	ap.Status = string(StatusCompleted)
	ap.Subtotal = decimal.NewNullDecimal(totals.Subtotal)
	ap.FinalCost = decimal.NewNullDecimal(totals.FinalCost)
	ap.FinishedAt = &now
	return totals
}

func Cancel(ap *models.Appointment, now time.Time) {
	ap.Status = string(StatusCanceled)
	ap.SlotKey = nil
	ap.CanceledAt = &now
}
