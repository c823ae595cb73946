package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
	"storefront.dev/shop/pkg/payment"
)

// Order totals are kept in dollars but Midtrans settles in IDR. The dollar
// figure is charged as whole IDR units with no exchange-rate conversion.
const defaultCurrency = "IDR"

type PaymentService struct {
	gateway payment.Gateway
	orders  *OrderService
}

// NewPaymentService wires the gateway. gateway may be nil when no provider
// is configured; every call then fails with 503.
func NewPaymentService(gateway payment.Gateway, orders *OrderService) *PaymentService {
	return &PaymentService{gateway: gateway, orders: orders}
}

func (s *PaymentService) Config() models.PaymentConfig {
	if s.gateway == nil {
		return models.PaymentConfig{}
	}
	return models.PaymentConfig{
		Provider:  s.gateway.Name(),
		ClientKey: s.gateway.ClientKey(),
		KeyID:     s.gateway.ClientKey(),
	}
}

// CreateOrder opens a gateway checkout. When the request names one of the
// caller's orders its total is charged and the order id is embedded in the
// gateway reference.
func (s *PaymentService) CreateOrder(ctx context.Context, user *models.User, req models.CreatePaymentRequest) (*payment.GatewayOrder, error) {
	if s.gateway == nil {
		return nil, global.NewError(global.ErrUnavailable, "Payment gateway is not configured")
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	amount := decimal.NewFromFloat(req.Amount)
	var orderID *bson.ObjectID
	if req.OrderID != "" {
		id, err := bson.ObjectIDFromHex(req.OrderID)
		if err != nil {
			return nil, global.FieldError(global.ErrValidation, "orderId", "Invalid order id")
		}
		order, err := s.orders.load(ctx, user, id)
		if err != nil {
			return nil, err
		}
		if order.IsPaid || order.IsCancelled {
			return nil, global.NewError(global.ErrInvalidState, "Order is not awaiting payment")
		}
		amount = decimal.NewFromFloat(order.TotalPrice)
		orderID = &order.ID
	}
	if !amount.IsPositive() {
		return nil, global.FieldError(global.ErrValidation, "amount", "Amount must be greater than 0")
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, amount, currency, payment.NewReference(orderID))
	if err != nil {
		global.Log.WithError(err).WithField("user", user.ID.Hex()).Error("Error creating gateway order")
		if errors.Is(err, payment.ErrNotConfigured) {
			return nil, global.NewError(global.ErrUnavailable, "Payment gateway is not configured")
		}
		return nil, err
	}
	return gatewayOrder, nil
}

// HandleNotification verifies a gateway callback and marks the referenced
// order paid once the payment settles. Repeated notifications for an order
// that is already paid return it unchanged.
func (s *PaymentService) HandleNotification(ctx context.Context, n *payment.Notification) (*models.Order, error) {
	if s.gateway == nil {
		return nil, global.NewError(global.ErrUnavailable, "Payment gateway is not configured")
	}
	if err := s.gateway.VerifyNotification(n); err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			return nil, global.NewError(global.ErrForbidden, "Invalid notification signature")
		}
		return nil, err
	}

	log := global.Log.WithFields(logrus.Fields{
		"reference": n.OrderID,
		"status":    n.TransactionStatus,
	})
	if !n.Settled() {
		log.Info("Payment notification without settlement")
		return nil, nil
	}

	id, ok := payment.ParseReference(n.OrderID)
	if !ok {
		log.Info("Payment notification not linked to an order")
		return nil, nil
	}

	order, err := s.orders.orders.FindByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "Order not found")
	}
	if order.IsPaid {
		return order, nil
	}

	result := models.PaymentResult{
		ID:         n.TransactionID,
		Status:     n.TransactionStatus,
		UpdateTime: n.TransactionTime,
	}
	updated, err := s.orders.markPaid(ctx, order, result)
	if errors.Is(err, global.ErrConflict) {
		// A concurrent notification may have won the race.
		if current, findErr := s.orders.orders.FindByID(ctx, id); findErr == nil && current.IsPaid {
			return current, nil
		}
	}
	if err != nil {
		return nil, err
	}

	log.WithField("order", id.Hex()).Info("Order marked paid from gateway notification")
	return updated, nil
}
