package services

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/cart"
	"storefront.dev/shop/pkg/models"
)

// CartService exposes the session cart over a cart.Store and turns it into
// an order at checkout.
type CartService struct {
	store   cart.Store
	catalog *CatalogService
	orders  *OrderService
}

func NewCartService(store cart.Store, catalog *CatalogService, orders *OrderService) *CartService {
	return &CartService{store: store, catalog: catalog, orders: orders}
}

func (s *CartService) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	svc, err := cart.Open(ctx, s.store, sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(svc), nil
}

func (s *CartService) AddItem(ctx context.Context, sessionID string, productID bson.ObjectID, qty int) (*models.Cart, error) {
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(svc *cart.Service) error {
		return svc.AddItem(ctx, product, qty)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID bson.ObjectID) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(svc *cart.Service) error {
		return svc.RemoveItem(ctx, productID)
	})
}

func (s *CartService) SaveShippingAddress(ctx context.Context, sessionID string, address models.ShippingAddress) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(svc *cart.Service) error {
		return svc.SaveShippingAddress(ctx, address)
	})
}

func (s *CartService) SavePaymentMethod(ctx context.Context, sessionID, method string) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(svc *cart.Service) error {
		return svc.SavePaymentMethod(ctx, method)
	})
}

func (s *CartService) Clear(ctx context.Context, sessionID string) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(svc *cart.Service) error {
		return svc.Clear(ctx)
	})
}

// Checkout places an order for user from the session cart and empties it.
func (s *CartService) Checkout(ctx context.Context, user *models.User, sessionID string) (*models.Order, error) {
	svc, err := cart.Open(ctx, s.store, sessionID)
	if err != nil {
		return nil, err
	}
	req, err := svc.OrderRequest()
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, user, *req)
	if err != nil {
		return nil, err
	}
	if err := svc.Clear(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(*cart.Service) error) (*models.Cart, error) {
	svc, err := cart.Open(ctx, s.store, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(svc); err != nil {
		return nil, err
	}
	return snapshot(svc), nil
}

func snapshot(svc *cart.Service) *models.Cart {
	c := svc.Cart()
	return &c
}
