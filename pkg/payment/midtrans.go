package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

// Midtrans creates Snap transactions.
type Midtrans struct {
	client    snap.Client
	serverKey string
	clientKey string
}

func NewMidtrans(serverKey, clientKey string, production bool) *Midtrans {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	m := &Midtrans{serverKey: serverKey, clientKey: clientKey}
	m.client.New(serverKey, env)
	return m
}

func (m *Midtrans) Name() string { return "midtrans" }

func (m *Midtrans) ClientKey() string { return m.clientKey }

func (m *Midtrans) CreateOrder(_ context.Context, amount decimal.Decimal, currency, reference string) (*GatewayOrder, error) {
	if m.serverKey == "" {
		return nil, ErrNotConfigured
	}

	// Snap takes whole currency units.
	gross := amount.Round(0).IntPart()
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  reference,
			GrossAmt: gross,
		},
	}

	resp, snapErr := m.client.CreateTransaction(req)
	if snapErr != nil {
		return nil, snapErr
	}

	return &GatewayOrder{
		ID:          reference,
		Receipt:     reference,
		Amount:      float64(gross),
		Currency:    currency,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
		Provider:    m.Name(),
	}, nil
}

// VerifyNotification checks signature_key = sha512(order_id+status_code+gross_amount+server_key).
func (m *Midtrans) VerifyNotification(n *Notification) error {
	if m.serverKey == "" {
		return ErrNotConfigured
	}
	hash := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + m.serverKey))
	expected := hex.EncodeToString(hash[:])
	if subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

// Sign is the signature the gateway would send for n.
func (m *Midtrans) Sign(n *Notification) string {
	hash := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + m.serverKey))
	return hex.EncodeToString(hash[:])
}
