// Package costing computes job totals from itemized parts and labor.
//
// Amounts keep full precision. Only Display rounds, and only for output.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-center/internal/models"
)

// OffPeakFactor is applied to the subtotal of discount eligible jobs.
var OffPeakFactor = decimal.New(95, -2)

type Totals struct {
	PartsTotal decimal.Decimal `json:"parts_total"`
	LaborTotal decimal.Decimal `json:"labor_total"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	FinalCost  decimal.Decimal `json:"final_cost"`
	Discounted bool            `json:"discounted"`
}

func PartsTotal(parts []models.AppointmentPart) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parts {
		total = total.Add(p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return total
}

func LaborTotal(labor []models.LaborItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range labor {
		total = total.Add(l.Cost)
	}
	return total
}

func Compute(parts []models.AppointmentPart, labor []models.LaborItem, discountEligible bool) Totals {
	t := Totals{
		PartsTotal: PartsTotal(parts),
		LaborTotal: LaborTotal(labor),
		Discounted: discountEligible,
	}
	t.Subtotal = t.PartsTotal.Add(t.LaborTotal)
	t.FinalCost = t.Subtotal
	if discountEligible {
		t.FinalCost = t.Subtotal.Mul(OffPeakFactor)
	}
	return t
}

// Display formats an amount with two decimal places.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
