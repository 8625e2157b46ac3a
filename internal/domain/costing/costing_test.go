package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/BruksfildServices01/service-center/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		parts     []models.AppointmentPart
		labor     []models.LaborItem
		eligible  bool
		subtotal  string
		finalCost string
	}{
		{
			name:      "empty job",
			subtotal:  "0",
			finalCost: "0",
		},
		{
			name:      "empty job eligible",
			eligible:  true,
			subtotal:  "0",
			finalCost: "0",
		},
		{
			name: "parts and labor, peak day",
			parts: []models.AppointmentPart{
				{Quantity: 2, UnitPrice: dec("25.00")},
			},
			labor: []models.LaborItem{
				{Cost: dec("100.00")},
			},
			subtotal:  "150",
			finalCost: "150",
		},
		{
			name: "parts and labor, off-peak day",
			parts: []models.AppointmentPart{
				{Quantity: 2, UnitPrice: dec("25.00")},
			},
			labor: []models.LaborItem{
				{Cost: dec("100.00")},
			},
			eligible:  true,
			subtotal:  "150",
			finalCost: "142.5",
		},
		{
			name: "fractional cents are kept",
			labor: []models.LaborItem{
				{Cost: dec("10.01")},
			},
			eligible:  true,
			subtotal:  "10.01",
			finalCost: "9.5095",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.parts, tt.labor, tt.eligible)

			assert.True(t, dec(tt.subtotal).Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, dec(tt.finalCost).Equal(got.FinalCost), "final cost %s", got.FinalCost)
			assert.True(t, got.PartsTotal.Add(got.LaborTotal).Equal(got.Subtotal))
			assert.Equal(t, tt.eligible, got.Discounted)
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "142.50", Display(dec("142.5")))
	assert.Equal(t, "9.51", Display(dec("9.5095")))
	assert.Equal(t, "0.00", Display(decimal.Zero))
}

func genParts(t *rapid.T) []models.AppointmentPart {
	n := rapid.IntRange(0, 6).Draw(t, "parts")
	parts := make([]models.AppointmentPart, n)
	for i := range parts {
		parts[i] = models.AppointmentPart{
			Quantity:  rapid.IntRange(1, 50).Draw(t, "qty"),
			UnitPrice: decimal.New(rapid.Int64Range(0, 1_000_000).Draw(t, "cents"), -2),
		}
	}
	return parts
}

func genLabor(t *rapid.T) []models.LaborItem {
	n := rapid.IntRange(0, 6).Draw(t, "labor")
	labor := make([]models.LaborItem, n)
	for i := range labor {
		labor[i] = models.LaborItem{
			Cost: decimal.New(rapid.Int64Range(0, 1_000_000).Draw(t, "cents"), -2),
		}
	}
	return labor
}

func TestCompute_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		parts := genParts(t)
		labor := genLabor(t)

		full := Compute(parts, labor, false)
		disc := Compute(parts, labor, true)

		if !full.FinalCost.Equal(full.Subtotal) {
			t.Fatalf("peak final cost %s != subtotal %s", full.FinalCost, full.Subtotal)
		}
		if !disc.Subtotal.Equal(full.Subtotal) {
			t.Fatalf("subtotal depends on eligibility")
		}
		if !disc.FinalCost.Equal(disc.Subtotal.Mul(OffPeakFactor)) {
			t.Fatalf("discounted final cost %s", disc.FinalCost)
		}
		if disc.FinalCost.GreaterThan(disc.Subtotal) || disc.FinalCost.IsNegative() {
			t.Fatalf("discounted final cost out of range: %s of %s", disc.FinalCost, disc.Subtotal)
		}

		// Order of line items does not matter.
		rev := make([]models.LaborItem, len(labor))
		for i := range labor {
			rev[len(labor)-1-i] = labor[i]
		}
		if again := Compute(parts, rev, true); !again.FinalCost.Equal(disc.FinalCost) {
			t.Fatalf("totals depend on labor order")
		}
	})
}
