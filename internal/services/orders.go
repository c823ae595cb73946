package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
	"storefront.dev/shop/pkg/pricing"
	"storefront.dev/shop/pkg/report"
)

type OrderService struct {
	orders   OrderRepository
	products ProductRepository
	users    UserRepository
	cache    ProductCache
	now      func() time.Time
}

// NewOrderService wires the order workflow. cache may be nil; when set,
// products whose stock changes are evicted from it.
func NewOrderService(orders OrderRepository, products ProductRepository, users UserRepository, cache ProductCache) *OrderService {
	return &OrderService{orders: orders, products: products, users: users, cache: cache, now: time.Now}
}

// Create places an order for user. Line names, images and prices come from
// the catalog and the totals are recomputed; client supplied totals are only
// compared for logging. Stock is not reserved here.
func (s *OrderService) Create(ctx context.Context, user *models.User, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, global.FieldError(global.ErrValidation, "orderItems", "No order items")
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, line := range req.OrderItems {
		if line.Qty < 1 {
			return nil, global.FieldError(global.ErrValidation, "orderItems", "Quantity must be at least 1")
		}
		product, err := s.products.FindByID(ctx, line.Product)
		if errors.Is(err, global.ErrNotFound) {
			return nil, global.FieldError(global.ErrValidation, "orderItems", "Product not found: "+line.Product.Hex())
		}
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			Product: product.ID,
			Name:    product.Name,
			Image:   product.Image,
			Price:   product.Price,
			Qty:     line.Qty,
		})
	}

	prices := pricing.Calculate(pricing.FromOrderItems(items))
	if req.TotalPrice != 0 && pricing.Differs(req.TotalPrice, prices.TotalPrice) {
		global.Log.WithFields(logrus.Fields{
			"user":         user.ID.Hex(),
			"client_total": req.TotalPrice,
			"server_total": prices.TotalPrice,
		}).Warn("Client order total differs from catalog prices, using server total")
	}

	order := &models.Order{
		User:            user.ID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      prices.ItemsPrice,
		TaxPrice:        prices.TaxPrice,
		ShippingPrice:   prices.ShippingPrice,
		TotalPrice:      prices.TotalPrice,
		Status:          models.StatusCreated,
	}
	order.SetTimestamps()

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns the order with the purchaser's name and email. Only the owner
// and admins may read it.
func (s *OrderService) Get(ctx context.Context, user *models.User, id bson.ObjectID) (*models.OrderWithUser, error) {
	order, err := s.load(ctx, user, id)
	if err != nil {
		return nil, err
	}

	result := &models.OrderWithUser{Order: *order}
	if owner, err := s.users.FindByID(ctx, order.User); err == nil {
		summary := owner.Summary()
		result.UserInfo = &summary
	} else if !errors.Is(err, global.ErrNotFound) {
		return nil, err
	}
	return result, nil
}

func (s *OrderService) Mine(ctx context.Context, user *models.User) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, user.ID)
}

func (s *OrderService) All(ctx context.Context) ([]models.OrderWithUser, error) {
	return s.orders.FindAllWithUsers(ctx)
}

// MarkPaid records the gateway confirmation on an order awaiting payment.
func (s *OrderService) MarkPaid(ctx context.Context, user *models.User, id bson.ObjectID, result models.PaymentResult) (*models.Order, error) {
	order, err := s.load(ctx, user, id)
	if err != nil {
		return nil, err
	}
	return s.markPaid(ctx, order, result)
}

func (s *OrderService) markPaid(ctx context.Context, order *models.Order, result models.PaymentResult) (*models.Order, error) {
	if !order.CanTransition(models.StatusPaid) {
		return nil, invalidTransition(order, models.StatusPaid)
	}

	updated, err := s.orders.MarkPaid(ctx, order.ID, result, s.now())
	if err != nil {
		return nil, conflictMessage(err)
	}
	return updated, nil
}

// MarkDelivered is admin only and requires a paid order.
func (s *OrderService) MarkDelivered(ctx context.Context, id bson.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "Order not found")
	}
	if !order.CanTransition(models.StatusDelivered) {
		return nil, invalidTransition(order, models.StatusDelivered)
	}

	updated, err := s.orders.MarkDelivered(ctx, id, s.now())
	if err != nil {
		return nil, conflictMessage(err)
	}
	return updated, nil
}

// Cancel returns the ordered quantities to stock and marks the order
// cancelled. Paid orders cannot be cancelled.
func (s *OrderService) Cancel(ctx context.Context, user *models.User, id bson.ObjectID) (*models.Order, error) {
	order, err := s.load(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, global.NewError(global.ErrInvalidState, "Cannot cancel a paid order")
	}
	if !order.CanTransition(models.StatusCancelled) {
		return nil, invalidTransition(order, models.StatusCancelled)
	}

	updated, err := s.orders.Cancel(ctx, order, user.ID, s.now())
	if err != nil {
		return nil, conflictMessage(err)
	}
	s.evictRestocked(ctx, order)

	global.Log.WithFields(logrus.Fields{
		"order": id.Hex(),
		"by":    user.ID.Hex(),
		"units": order.GetItemCount(),
	}).Info("Order cancelled and stock restored")
	return updated, nil
}

// evictRestocked drops cached copies of the order's products so readers see
// the restored stock.
func (s *OrderService) evictRestocked(ctx context.Context, order *models.Order) {
	if s.cache == nil {
		return
	}
	ids := make([]bson.ObjectID, len(order.OrderItems))
	for i, item := range order.OrderItems {
		ids[i] = item.Product
	}
	if err := s.cache.Delete(ctx, ids...); err != nil {
		global.Log.WithError(err).WithField("order", order.ID.Hex()).Warn("Failed to evict restocked products from cache")
	}
}

func (s *OrderService) ExportCSV(ctx context.Context, w io.Writer) error {
	orders, err := s.orders.FindAllWithUsers(ctx)
	if err != nil {
		return err
	}
	return report.WriteOrdersCSV(w, orders)
}

func (s *OrderService) Invoice(ctx context.Context, user *models.User, id bson.ObjectID, w io.Writer) error {
	order, err := s.Get(ctx, user, id)
	if err != nil {
		return err
	}
	return report.WriteInvoice(w, &order.Order, order.UserInfo)
}

// load fetches an order the caller is allowed to act on.
func (s *OrderService) load(ctx context.Context, user *models.User, id bson.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "Order not found")
	}
	if !user.IsAdmin && !order.IsOwnedBy(user.ID) {
		return nil, global.NewError(global.ErrForbidden, "Not authorized to access this order")
	}
	return order, nil
}

func invalidTransition(order *models.Order, next models.OrderStatus) error {
	var message string
	switch {
	case next == models.StatusPaid && order.IsCancelled:
		message = "Order is cancelled"
	case next == models.StatusPaid:
		message = "Order is already paid"
	case next == models.StatusDelivered && order.IsDelivered:
		message = "Order is already delivered"
	case next == models.StatusDelivered:
		message = "Order must be paid before it can be delivered"
	default:
		message = "Order cannot be cancelled"
	}
	return global.NewError(global.ErrInvalidState, message)
}

func conflictMessage(err error) error {
	if errors.Is(err, global.ErrConflict) {
		return global.NewError(global.ErrConflict, "Order was modified by another request, please retry")
	}
	return err
}
