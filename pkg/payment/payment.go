// Package payment creates gateway orders and verifies gateway notifications.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrInvalidSignature = errors.New("invalid notification signature")
	ErrNotConfigured    = errors.New("payment gateway is not configured")
)

// GatewayOrder is what the client needs to open the gateway checkout.
type GatewayOrder struct {
	ID          string  `json:"id"`
	Receipt     string  `json:"receipt"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Token       string  `json:"token,omitempty"`
	RedirectURL string  `json:"redirectUrl,omitempty"`
	Provider    string  `json:"provider"`
}

// Notification is the asynchronous status callback sent by the gateway.
type Notification struct {
	OrderID           string `json:"order_id" binding:"required"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
}

// Settled reports whether the notification confirms the money was taken.
func (n *Notification) Settled() bool {
	switch n.TransactionStatus {
	case "settlement":
		return true
	case "capture":
		return n.FraudStatus == "" || n.FraudStatus == "accept"
	}
	return false
}

type Gateway interface {
	Name() string
	ClientKey() string
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, reference string) (*GatewayOrder, error)
	VerifyNotification(n *Notification) error
}

// NewReference builds the gateway order id. When orderID is set it is
// embedded so notifications can be matched back to the order. Midtrans
// limits order ids to 50 characters.
func NewReference(orderID *bson.ObjectID) string {
	if orderID == nil || orderID.IsZero() {
		return "RCPT-" + uuid.NewString()
	}
	return fmt.Sprintf("ORDER-%s-%s", orderID.Hex(), uuid.NewString()[:8])
}

// ParseReference extracts the order id embedded by NewReference.
func ParseReference(reference string) (bson.ObjectID, bool) {
	rest, ok := strings.CutPrefix(reference, "ORDER-")
	if !ok {
		return bson.ObjectID{}, false
	}
	hex, _, ok := strings.Cut(rest, "-")
	if !ok {
		return bson.ObjectID{}, false
	}
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.ObjectID{}, false
	}
	return id, true
}
