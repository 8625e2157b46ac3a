// Package invoice renders itemized invoices for completed appointments.
package invoice

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/domain/costing"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type TextRenderer struct {
	ShopName string
}

func NewTextRenderer(shopName string) *TextRenderer {
	return &TextRenderer{ShopName: shopName}
}

// RenderInvoice prints the parts and labor lines with totals. The totals
// printed are the ones stored at completion, not recomputed ones.
func (r *TextRenderer) RenderInvoice(ap *models.Appointment) ([]byte, error) {
	if appointment.Status(ap.Status) != appointment.StatusCompleted || !ap.Subtotal.Valid || !ap.FinalCost.Valid {
		return nil, fmt.Errorf("appointment %d is not completed", ap.ID)
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(&buf, "%s\nINVOICE #%d\n", r.ShopName, ap.ID)
	fmt.Fprintf(&buf, "Service: %s\nDate: %s %s\n", ap.ServiceType, ap.ServiceDate, ap.TimeSlot)
	if ap.FinishedAt != nil {
		fmt.Fprintf(&buf, "Completed: %s\n", ap.FinishedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	buf.WriteString("\n")

	if len(ap.Parts) > 0 {
		fmt.Fprintln(tw, "Part\tQty\tUnit\tAmount\t")
		for _, p := range ap.Parts {
			line := p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n", p.ItemName, p.Quantity, costing.Display(p.UnitPrice), costing.Display(line))
		}
		fmt.Fprintln(tw, "\t\t\t\t")
	}

	if len(ap.Labor) > 0 {
		fmt.Fprintln(tw, "Labor\t\t\tAmount\t")
		for _, l := range ap.Labor {
			fmt.Fprintf(tw, "%s\t\t\t%s\t\n", l.Description, costing.Display(l.Cost))
		}
		fmt.Fprintln(tw, "\t\t\t\t")
	}

	subtotal := ap.Subtotal.Decimal
	final := ap.FinalCost.Decimal

	fmt.Fprintf(tw, "Subtotal\t\t\t%s\t\n", costing.Display(subtotal))
	if ap.DiscountEligible {
		fmt.Fprintf(tw, "Off-peak discount (5%%)\t\t\t-%s\t\n", costing.Display(subtotal.Sub(final)))
	}
	fmt.Fprintf(tw, "Total\t\t\t%s\t\n", costing.Display(final))

	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
