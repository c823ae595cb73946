package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type OrderStatus string

const (
	StatusCreated   OrderStatus = "created"
	StatusPaid      OrderStatus = "paid"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// allowedTransitions is the order lifecycle: created -> paid -> delivered,
// with cancelled reachable only from created.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusCreated: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusDelivered},
}

// OrderItem is a line of an order with the product snapshot taken at checkout.
type OrderItem struct {
	Product bson.ObjectID `json:"product" bson:"product" binding:"required"`
	Name    string        `json:"name" bson:"name"`
	Image   string        `json:"image" bson:"image"`
	Price   float64       `json:"price" bson:"price"`
	Qty     int           `json:"qty" bson:"qty" binding:"required,gte=1"`
}

type ShippingAddress struct {
	Address    string `json:"address" bson:"address" binding:"required"`
	City       string `json:"city" bson:"city" binding:"required"`
	PostalCode string `json:"postalCode" bson:"postalCode" binding:"required"`
	Country    string `json:"country" bson:"country" binding:"required"`
}

// PaymentResult holds the gateway confirmation as received.
type PaymentResult struct {
	ID           string `json:"id" bson:"id"`
	Status       string `json:"status" bson:"status"`
	UpdateTime   string `json:"update_time" bson:"update_time"`
	EmailAddress string `json:"email_address" bson:"email_address"`
}

type Order struct {
	ID              bson.ObjectID   `json:"_id" bson:"_id,omitempty"`
	User            bson.ObjectID   `json:"user" bson:"user"`
	OrderItems      []OrderItem     `json:"orderItems" bson:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice" bson:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice" bson:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice" bson:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice" bson:"totalPrice"`
	Status          OrderStatus     `json:"status" bson:"status"`
	IsPaid          bool            `json:"isPaid" bson:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	IsDelivered     bool            `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	IsCancelled     bool            `json:"isCancelled" bson:"isCancelled"`
	CancelledAt     *time.Time      `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// OrderWithUser is an order joined with the purchaser's name and email.
type OrderWithUser struct {
	Order    `bson:",inline"`
	UserInfo *UserSummary `json:"userInfo,omitempty" bson:"userInfo,omitempty"`
}

type UserSummary struct {
	ID    bson.ObjectID `json:"_id" bson:"_id"`
	Name  string        `json:"name" bson:"name"`
	Email string        `json:"email" bson:"email"`
}

// SetTimestamps sets createdAt and updatedAt timestamps
func (o *Order) SetTimestamps() {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

// CanTransition reports whether the order may move to next.
func (o *Order) CanTransition(next OrderStatus) bool {
	for _, s := range allowedTransitions[o.CurrentStatus()] {
		if s == next {
			return true
		}
	}
	return false
}

// CurrentStatus falls back to the boolean flags for documents written
// before the status field existed.
func (o *Order) CurrentStatus() OrderStatus {
	if o.Status != "" {
		return o.Status
	}
	switch {
	case o.IsCancelled:
		return StatusCancelled
	case o.IsDelivered:
		return StatusDelivered
	case o.IsPaid:
		return StatusPaid
	default:
		return StatusCreated
	}
}

// Transition moves the order to next and stamps the matching flag and time.
func (o *Order) Transition(next OrderStatus, at time.Time) error {
	if !o.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.CurrentStatus(), next)
	}
	o.Status = next
	switch next {
	case StatusPaid:
		o.IsPaid = true
		o.PaidAt = &at
	case StatusDelivered:
		o.IsDelivered = true
		o.DeliveredAt = &at
	case StatusCancelled:
		o.IsCancelled = true
		o.CancelledAt = &at
	}
	o.UpdatedAt = at
	return nil
}

// GetItemCount returns the total number of units in the order
func (o *Order) GetItemCount() int {
	var count int
	for _, item := range o.OrderItems {
		count += item.Qty
	}
	return count
}

func (o *Order) IsOwnedBy(userID bson.ObjectID) bool {
	return o.User == userID
}

type CreateOrderRequest struct {
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
}

type Payer struct {
	EmailAddress string `json:"email_address"`
}

// PayOrderRequest is the gateway confirmation the client forwards.
type PayOrderRequest struct {
	ID         string `json:"id" binding:"required"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      Payer  `json:"payer"`
}

func (r *PayOrderRequest) ToResult() PaymentResult {
	return PaymentResult{
		ID:           r.ID,
		Status:       r.Status,
		UpdateTime:   r.UpdateTime,
		EmailAddress: r.Payer.EmailAddress,
	}
}
