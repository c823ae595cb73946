// Package cart implements the shopping cart as a service object that owns its
// items in memory and persists them through a Store after every mutation.
package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
	"storefront.dev/shop/pkg/pricing"
)

// ErrNotFound is returned by a Store when no cart exists for the session.
var ErrNotFound = errors.New("cart not found")

// Store persists carts by session id.
type Store interface {
	Load(ctx context.Context, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type Service struct {
	store Store
	cart  *models.Cart
}

// Open loads the cart for sessionID, starting an empty one if none is stored.
func Open(ctx context.Context, store Store, sessionID string) (*Service, error) {
	if sessionID == "" {
		return nil, global.FieldError(global.ErrValidation, "sessionId", "Session id is required")
	}

	c, err := store.Load(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		c = &models.Cart{SessionID: sessionID}
	} else if err != nil {
		return nil, err
	}
	if c.CartItems == nil {
		c.CartItems = []models.CartItem{}
	}
	return &Service{store: store, cart: c}, nil
}

// Cart returns a copy of the current cart with freshly computed prices.
func (s *Service) Cart() models.Cart {
	c := *s.cart
	c.CartItems = append([]models.CartItem(nil), s.cart.CartItems...)
	c.Prices = pricing.Calculate(pricing.FromCartItems(c.CartItems))
	return c
}

// AddItem puts product in the cart with qty units. An existing line for the
// same product is replaced, never duplicated.
func (s *Service) AddItem(ctx context.Context, product *models.Product, qty int) error {
	if qty < 1 {
		return global.FieldError(global.ErrValidation, "qty", "Quantity must be at least 1")
	}
	if !product.IsInStock() {
		return global.FieldError(global.ErrValidation, "product", product.Name+" is out of stock")
	}
	if qty > product.CountInStock {
		return global.FieldError(global.ErrValidation, "qty", "Not enough stock for "+product.Name)
	}

	item := models.CartItem{
		Product:      product.ID,
		Name:         product.Name,
		Image:        product.Image,
		Price:        product.Price,
		CountInStock: product.CountInStock,
		Qty:          qty,
	}

	replaced := false
	for i := range s.cart.CartItems {
		if s.cart.CartItems[i].Product == product.ID {
			s.cart.CartItems[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.cart.CartItems = append(s.cart.CartItems, item)
	}
	return s.save(ctx)
}

func (s *Service) RemoveItem(ctx context.Context, productID bson.ObjectID) error {
	items := s.cart.CartItems[:0]
	for _, it := range s.cart.CartItems {
		if it.Product != productID {
			items = append(items, it)
		}
	}
	s.cart.CartItems = items
	return s.save(ctx)
}

func (s *Service) SaveShippingAddress(ctx context.Context, address models.ShippingAddress) error {
	s.cart.ShippingAddress = &address
	return s.save(ctx)
}

func (s *Service) SavePaymentMethod(ctx context.Context, method string) error {
	s.cart.PaymentMethod = method
	return s.save(ctx)
}

// Clear empties the cart items but keeps shipping address and payment method,
// which are reused on the next checkout.
func (s *Service) Clear(ctx context.Context) error {
	s.cart.CartItems = []models.CartItem{}
	return s.save(ctx)
}

// OrderRequest snapshots the cart into a checkout request.
func (s *Service) OrderRequest() (*models.CreateOrderRequest, error) {
	if len(s.cart.CartItems) == 0 {
		return nil, global.NewError(global.ErrValidation, "No order items")
	}
	if s.cart.ShippingAddress == nil {
		return nil, global.FieldError(global.ErrValidation, "shippingAddress", "Shipping address is required")
	}
	if s.cart.PaymentMethod == "" {
		return nil, global.FieldError(global.ErrValidation, "paymentMethod", "Payment method is required")
	}

	c := s.Cart()
	items := make([]models.OrderItem, len(c.CartItems))
	for i, it := range c.CartItems {
		items[i] = models.OrderItem{Product: it.Product, Name: it.Name, Image: it.Image, Price: it.Price, Qty: it.Qty}
	}
	return &models.CreateOrderRequest{
		OrderItems:      items,
		ShippingAddress: *c.ShippingAddress,
		PaymentMethod:   c.PaymentMethod,
		ItemsPrice:      c.ItemsPrice,
		TaxPrice:        c.TaxPrice,
		ShippingPrice:   c.ShippingPrice,
		TotalPrice:      c.TotalPrice,
	}, nil
}

func (s *Service) save(ctx context.Context) error {
	s.cart.Prices = pricing.Calculate(pricing.FromCartItems(s.cart.CartItems))
	s.cart.UpdatedAt = time.Now().UTC()
	return s.store.Save(ctx, s.cart)
}
