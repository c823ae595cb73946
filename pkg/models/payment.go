package models

// CreatePaymentRequest opens a gateway checkout. With OrderID set the amount
// is taken from the order instead of the request.
type CreatePaymentRequest struct {
	Amount   float64 `json:"amount" binding:"omitempty,gt=0"`
	Currency string  `json:"currency"`
	OrderID  string  `json:"orderId"`
}

// PaymentConfig is the public part of the gateway configuration.
type PaymentConfig struct {
	Provider  string `json:"provider"`
	ClientKey string `json:"clientKey"`
	KeyID     string `json:"keyId"`
}
