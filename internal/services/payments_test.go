package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront.dev/shop/pkg/models"
	"storefront.dev/shop/pkg/payment"
)

type fakeGateway struct {
	amount    decimal.Decimal
	reference string
}

func (g *fakeGateway) Name() string      { return "fake" }
func (g *fakeGateway) ClientKey() string { return "client-key" }

func (g *fakeGateway) CreateOrder(_ context.Context, amount decimal.Decimal, currency, reference string) (*payment.GatewayOrder, error) {
	g.amount = amount
	g.reference = reference
	return &payment.GatewayOrder{ID: reference, Receipt: reference, Amount: amount.InexactFloat64(), Currency: currency, Provider: g.Name()}, nil
}

func (g *fakeGateway) VerifyNotification(n *payment.Notification) error {
	if n.SignatureKey != "valid" {
		return payment.ErrInvalidSignature
	}
	return nil
}

func TestPaymentCreateOrder_UsesOrderTotal(t *testing.T) {
	f := newOrderFixture(t)
	gateway := &fakeGateway{}
	svc := NewPaymentService(gateway, f.svc)
	order := f.place(t, 2)

	gatewayOrder, err := svc.CreateOrder(context.Background(), f.customer, models.CreatePaymentRequest{Amount: 1, OrderID: order.ID.Hex()})
	require.NoError(t, err)
	assert.True(t, gateway.amount.Equal(decimal.NewFromFloat(61.73)))
	assert.Equal(t, "IDR", gatewayOrder.Currency)

	id, ok := payment.ParseReference(gateway.reference)
	require.True(t, ok)
	assert.Equal(t, order.ID, id)
}

func TestPaymentCreateOrder_Validation(t *testing.T) {
	f := newOrderFixture(t)
	svc := NewPaymentService(&fakeGateway{}, f.svc)

	_, err := svc.CreateOrder(context.Background(), f.customer, models.CreatePaymentRequest{})
	assertStatus(t, err, http.StatusBadRequest, "Amount must be greater than 0")

	_, err = svc.CreateOrder(context.Background(), f.customer, models.CreatePaymentRequest{OrderID: "nope"})
	assertStatus(t, err, http.StatusBadRequest, "Invalid order id")

	unconfigured := NewPaymentService(nil, f.svc)
	_, err = unconfigured.CreateOrder(context.Background(), f.customer, models.CreatePaymentRequest{Amount: 10})
	assertStatus(t, err, http.StatusServiceUnavailable, "Payment gateway is not configured")
}

func TestPaymentNotification_MarksPaidOnce(t *testing.T) {
	f := newOrderFixture(t)
	svc := NewPaymentService(&fakeGateway{}, f.svc)
	order := f.place(t, 1)

	n := &payment.Notification{
		OrderID:           payment.NewReference(&order.ID),
		SignatureKey:      "valid",
		TransactionID:     "tx-9",
		TransactionStatus: "settlement",
	}

	paid, err := svc.HandleNotification(context.Background(), n)
	require.NoError(t, err)
	require.NotNil(t, paid)
	assert.True(t, paid.IsPaid)
	assert.Equal(t, "tx-9", paid.PaymentResult.ID)

	again, err := svc.HandleNotification(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, paid.PaidAt, again.PaidAt)
}

func TestPaymentNotification_Rejected(t *testing.T) {
	f := newOrderFixture(t)
	svc := NewPaymentService(&fakeGateway{}, f.svc)
	order := f.place(t, 1)

	_, err := svc.HandleNotification(context.Background(), &payment.Notification{
		OrderID:           payment.NewReference(&order.ID),
		SignatureKey:      "forged",
		TransactionStatus: "settlement",
	})
	assertStatus(t, err, http.StatusForbidden, "Invalid notification signature")

	pending, err := svc.HandleNotification(context.Background(), &payment.Notification{
		OrderID:           payment.NewReference(&order.ID),
		SignatureKey:      "valid",
		TransactionStatus: "pending",
	})
	require.NoError(t, err)
	assert.Nil(t, pending)

	stored, err := f.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPaid)
}
