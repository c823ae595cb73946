package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CartItem is a cart line with the product snapshot taken when it was added.
type CartItem struct {
	Product      bson.ObjectID `json:"product"`
	Name         string        `json:"name"`
	Image        string        `json:"image"`
	Price        float64       `json:"price"`
	CountInStock int           `json:"countInStock"`
	Qty          int           `json:"qty"`
}

// Prices is the checkout breakdown shared by carts and orders.
type Prices struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

type Cart struct {
	SessionID       string           `json:"sessionId"`
	CartItems       []CartItem       `json:"cartItems"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	PaymentMethod   string           `json:"paymentMethod,omitempty"`
	Prices
	UpdatedAt time.Time `json:"updatedAt"`
}

type AddToCartRequest struct {
	Product string `json:"product" binding:"required"`
	Qty     int    `json:"qty" binding:"required,min=1"`
}

type PaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}
