// Package memstore holds in-process implementations of the service
// repositories. Tests use them in place of MongoDB and Redis.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

// Products keeps products in insertion order.
type Products struct {
	mu    sync.Mutex
	order []bson.ObjectID
	items map[bson.ObjectID]models.Product
}

func NewProducts(products ...models.Product) *Products {
	s := &Products{items: make(map[bson.ObjectID]models.Product)}
	for _, p := range products {
		_ = s.Create(context.Background(), &p)
	}
	return s
}

func (s *Products) List(_ context.Context, keyword, category string, page, pageSize int) ([]models.Product, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.Product
	for _, id := range s.order {
		p := s.items[id]
		if keyword != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(keyword)) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		matched = append(matched, p)
	}

	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return append([]models.Product{}, matched[start:end]...), int64(len(matched)), nil
}

func (s *Products) FindByID(_ context.Context, id bson.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id.Hex(), global.ErrNotFound)
	}
	return &p, nil
}

func (s *Products) Top(_ context.Context, limit int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Products) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, id := range s.order {
		c := s.items[id].Category
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Products) Related(_ context.Context, product *models.Product, limit int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Product{}
	for _, id := range s.order {
		p := s.items[id]
		if p.Category == product.Category && p.ID != product.ID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Products) Create(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = bson.NewObjectID()
	}
	s.order = append(s.order, product.ID)
	s.items[product.ID] = *product
	return nil
}

func (s *Products) Update(_ context.Context, product *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[product.ID]; !ok {
		return nil, global.ErrNotFound
	}
	s.items[product.ID] = *product
	p := *product
	return &p, nil
}

func (s *Products) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return global.ErrNotFound
	}
	delete(s.items, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Products) AddReview(_ context.Context, productID bson.ObjectID, review models.Review) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[productID]
	if !ok {
		return nil, global.ErrNotFound
	}
	p.Reviews = append([]models.Review{}, p.Reviews...)
	if err := p.AddReview(review); err != nil {
		return nil, err
	}
	s.items[productID] = p
	return &p, nil
}

// Adjust adds delta to the stock of id and returns the previous count.
func (s *Products) Adjust(id bson.ObjectID, delta int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return 0, false
	}
	before := p.CountInStock
	p.CountInStock += delta
	s.items[id] = p
	return before, true
}

type Cache struct {
	mu      sync.Mutex
	items   map[bson.ObjectID]models.Product
	evicted int
}

func NewCache() *Cache {
	return &Cache{items: make(map[bson.ObjectID]models.Product)}
}

func (c *Cache) Get(_ context.Context, id bson.ObjectID) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.items[id]
	if !ok {
		return nil, errMiss
	}
	return &p, nil
}

func (c *Cache) Set(_ context.Context, product *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[product.ID] = *product
	return nil
}

func (c *Cache) Delete(_ context.Context, ids ...bson.ObjectID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.items, id)
		c.evicted++
	}
	return nil
}

var errMiss = errors.New("cache miss")

// Has reports whether id is cached.
func (c *Cache) Has(id bson.ObjectID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[id]
	return ok
}

func (c *Cache) Evictions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evicted
}

// Orders applies the same guards as the MongoDB store: each transition
// fails with global.ErrConflict when the order is no longer in the
// expected state.
type Orders struct {
	mu       sync.Mutex
	items    map[bson.ObjectID]models.Order
	products *Products
	users    *Users
	restocks []models.InventoryLog
}

func NewOrders(products *Products, users *Users) *Orders {
	return &Orders{items: make(map[bson.ObjectID]models.Order), products: products, users: users}
}

func (s *Orders) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = bson.NewObjectID()
	}
	s.items[order.ID] = *order
	return nil
}

func (s *Orders) FindByID(_ context.Context, id bson.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id.Hex(), global.ErrNotFound)
	}
	return &o, nil
}

func (s *Orders) FindByUser(_ context.Context, userID bson.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.items {
		if o.User == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Orders) FindAllWithUsers(ctx context.Context) ([]models.OrderWithUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.OrderWithUser{}
	for _, o := range s.items {
		row := models.OrderWithUser{Order: o}
		if u, err := s.users.FindByID(ctx, o.User); err == nil {
			summary := u.Summary()
			row.UserInfo = &summary
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *Orders) MarkPaid(_ context.Context, id bson.ObjectID, result models.PaymentResult, at time.Time) (*models.Order, error) {
	return s.update(id, func(o *models.Order) error {
		if o.IsPaid || o.IsCancelled {
			return global.ErrConflict
		}
		o.PaymentResult = &result
		return o.Transition(models.StatusPaid, at)
	})
}

func (s *Orders) MarkDelivered(_ context.Context, id bson.ObjectID, at time.Time) (*models.Order, error) {
	return s.update(id, func(o *models.Order) error {
		if !o.IsPaid || o.IsDelivered || o.IsCancelled {
			return global.ErrConflict
		}
		return o.Transition(models.StatusDelivered, at)
	})
}

func (s *Orders) Cancel(_ context.Context, order *models.Order, by bson.ObjectID, at time.Time) (*models.Order, error) {
	return s.update(order.ID, func(o *models.Order) error {
		if o.IsPaid || o.IsCancelled {
			return global.ErrConflict
		}
		for _, item := range o.OrderItems {
			if before, ok := s.products.Adjust(item.Product, item.Qty); ok {
				s.restocks = append(s.restocks, models.NewRestockLog(o, item.Product, before, item.Qty, by))
			}
		}
		return o.Transition(models.StatusCancelled, at)
	})
}

// Restocks returns the inventory log entries written by cancellations.
func (s *Orders) Restocks() []models.InventoryLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.InventoryLog(nil), s.restocks...)
}

func (s *Orders) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Orders) update(id bson.ObjectID, fn func(*models.Order) error) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return nil, global.ErrConflict
	}
	if err := fn(&o); err != nil {
		return nil, err
	}
	s.items[id] = o
	return &o, nil
}

type Users struct {
	mu    sync.Mutex
	items map[bson.ObjectID]models.User
}

func NewUsers() *Users {
	return &Users{items: make(map[bson.ObjectID]models.User)}
}

func (s *Users) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.items {
		if u.Email == user.Email {
			return global.ErrConflict
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	s.items[user.ID] = *user
	return nil
}

func (s *Users) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, global.ErrNotFound
	}
	return &u, nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.Email == email })
}

func (s *Users) FindByEmailOrProvider(_ context.Context, email, providerField, providerID string) (*models.User, error) {
	return s.find(func(u models.User) bool {
		if u.Email == email {
			return true
		}
		switch providerField {
		case "githubId":
			return providerID != "" && u.GitHubID == providerID
		case "googleId":
			return providerID != "" && u.GoogleID == providerID
		}
		return false
	})
}

func (s *Users) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[user.ID]; !ok {
		return global.ErrNotFound
	}
	for id, u := range s.items {
		if id != user.ID && u.Email == user.Email {
			return global.ErrConflict
		}
	}
	s.items[user.ID] = *user
	return nil
}

func (s *Users) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.items {
		out = append(out, u)
	}
	return out, nil
}

func (s *Users) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return global.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Users) find(match func(models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.items {
		if match(u) {
			return &u, nil
		}
	}
	return nil, global.ErrNotFound
}

type Analytics struct {
	Totals models.Summary
	Series []models.MonthlySales
}

func (s *Analytics) Summary(context.Context) (*models.Summary, error) {
	totals := s.Totals
	return &totals, nil
}

func (s *Analytics) SalesOverTime(context.Context) ([]models.MonthlySales, error) {
	return s.Series, nil
}
