// Package payment creates checkout links for final invoices.
package payment

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/service-center/internal/models"
	"github.com/BruksfildServices01/service-center/internal/outbox"
)

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago builds one checkout preference per completed appointment for
// its final cost.
type MercadoPago struct {
	client preferenceCreator
}

// NewMercadoPago returns nil when no access token is configured.
func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, nil
	}
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: preference.NewClient(cfg)}, nil
}

func (m *MercadoPago) PaymentLink(ctx context.Context, ap *models.Appointment) (string, error) {
	if !ap.FinalCost.Valid {
		return "", fmt.Errorf("appointment %d has no final cost", ap.ID)
	}

	amount, _ := ap.FinalCost.Decimal.Round(2).Float64()

	resp, err := m.client.Create(ctx, preference.Request{
		ExternalReference: "appointment-" + strconv.FormatUint(uint64(ap.ID), 10),
		Items: []preference.ItemRequest{
			{
				ID:        strconv.FormatUint(uint64(ap.ID), 10),
				Title:     ap.ServiceType,
				Quantity:  1,
				UnitPrice: amount,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}
	return resp.InitPoint, nil
}

var _ outbox.PaymentLinker = (*MercadoPago)(nil)
