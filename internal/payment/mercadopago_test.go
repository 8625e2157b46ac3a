package payment

import (
	"context"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-center/internal/models"
)

type fakePreferences struct {
	req preference.Request
}

func (f *fakePreferences) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.req = req
	return &preference.Response{ID: "pref-1", InitPoint: "https://mp.example/checkout/pref-1"}, nil
}

func TestMercadoPago_PaymentLinkChargesRoundedFinalCost(t *testing.T) {
	fp := &fakePreferences{}
	mp := &MercadoPago{client: fp}

	ap := &models.Appointment{
		ID:          9,
		ServiceType: "Oil change",
		FinalCost:   decimal.NewNullDecimal(decimal.RequireFromString("142.4975")),
	}

	url, err := mp.PaymentLink(context.Background(), ap)
	require.NoError(t, err)

	assert.Equal(t, "https://mp.example/checkout/pref-1", url)
	assert.Equal(t, "appointment-9", fp.req.ExternalReference)
	require.Len(t, fp.req.Items, 1)
	assert.InDelta(t, 142.50, fp.req.Items[0].UnitPrice, 1e-9)
}

func TestMercadoPago_RequiresFinalCost(t *testing.T) {
	mp := &MercadoPago{client: &fakePreferences{}}

	_, err := mp.PaymentLink(context.Background(), &models.Appointment{ID: 1})
	assert.Error(t, err)
}

func TestNewMercadoPago_DisabledWithoutToken(t *testing.T) {
	mp, err := NewMercadoPago("")
	require.NoError(t, err)
	assert.Nil(t, mp)
}
