package application

import (
	"context"
	"testing"

	"github.com/bearingmart/storefront/internal/checkout/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	configured bool
	calls      []domain.CreateIntentRequest
}

func (m *mockGateway) CreateIntent(ctx context.Context, req domain.CreateIntentRequest) (*domain.PaymentIntent, error) {
	m.calls = append(m.calls, req)
	return &domain.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		AmountMinor:  req.AmountMinor,
		Currency:     req.Currency,
	}, nil
}

func (m *mockGateway) Configured() bool { return m.configured }

func newCheckoutService(gateway *mockGateway, cart *mockCartPort) (*CheckoutApplicationService, *mockSnapshots) {
	snapshots := newMockSnapshots()
	return NewCheckoutApplicationService(gateway, cart, snapshots, "cad", nil), snapshots
}

func TestCreatePaymentIntent(t *testing.T) {
	gateway := &mockGateway{configured: true}
	cart := &mockCartPort{lines: []domain.CartLine{
		{ProductID: "p1", Name: "6205-2RS Deep Groove", Price: decimal.RequireFromString("100.00"), Quantity: 2},
	}}
	svc, snapshots := newCheckoutService(gateway, cart)
	snapshots.addrs["user-1"] = domain.ShippingAddress{Name: "Dana Smith", Address: "100 Industrial Way", City: "Hamilton", Province: "ON", PostalCode: "L8N 1A1", Country: "CA"}

	intent, totals, err := svc.CreatePaymentIntent(context.Background(), "user-1", "dana@example.com")
	require.NoError(t, err)

	assert.Equal(t, "pi_test", intent.ID)
	assert.Equal(t, int64(24100), totals.TotalMinor)

	require.Len(t, gateway.calls, 1)
	call := gateway.calls[0]
	assert.Equal(t, int64(24100), call.AmountMinor)
	assert.Equal(t, "cad", call.Currency)
	assert.Equal(t, "dana@example.com", call.Email)
	assert.Len(t, call.CartLines, 1)
	assert.Equal(t, "Dana Smith", call.ShippingAddress.Name)
}

func TestCreatePaymentIntent_EmptyCartNeverCallsGateway(t *testing.T) {
	gateway := &mockGateway{configured: true}
	svc, _ := newCheckoutService(gateway, &mockCartPort{})

	_, _, err := svc.CreatePaymentIntent(context.Background(), "user-1", "")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, gateway.calls)
}

func TestCreatePaymentIntent_GatewayNotConfigured(t *testing.T) {
	gateway := &mockGateway{configured: false}
	cart := &mockCartPort{lines: []domain.CartLine{
		{ProductID: "p1", Price: decimal.RequireFromString("10.00"), Quantity: 1},
	}}
	svc, _ := newCheckoutService(gateway, cart)

	_, _, err := svc.CreatePaymentIntent(context.Background(), "user-1", "")
	assert.ErrorIs(t, err, ErrGatewayNotConfigured)
	assert.Empty(t, gateway.calls)
}

func TestSaveShippingAddress_RejectsIncomplete(t *testing.T) {
	svc, snapshots := newCheckoutService(&mockGateway{}, &mockCartPort{})

	err := svc.SaveShippingAddress(context.Background(), "user-1", domain.ShippingAddress{Name: "Dana Smith"})
	assert.ErrorIs(t, err, ErrIncompleteAddress)
	assert.Empty(t, snapshots.addrs)
}

func TestGetTotals(t *testing.T) {
	cart := &mockCartPort{lines: []domain.CartLine{
		{ProductID: "p1", Price: decimal.RequireFromString("24.99"), Quantity: 3},
	}}
	svc, _ := newCheckoutService(&mockGateway{}, cart)

	totals, err := svc.GetTotals(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7497), totals.SubtotalMinor)
}
