// Package services holds the storefront use cases. Each service depends on
// the small repository interfaces below; pkg/mongo and pkg/redis provide the
// production implementations.
package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

type ProductRepository interface {
	List(ctx context.Context, keyword, category string, page, pageSize int) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Product, error)
	Top(ctx context.Context, limit int) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Related(ctx context.Context, product *models.Product, limit int) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	AddReview(ctx context.Context, productID bson.ObjectID, review models.Review) (*models.Product, error)
}

// ProductCache is optional; any error from Get is treated as a miss.
type ProductCache interface {
	Get(ctx context.Context, id bson.ObjectID) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, ids ...bson.ObjectID) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error)
	FindAllWithUsers(ctx context.Context) ([]models.OrderWithUser, error)
	MarkPaid(ctx context.Context, id bson.ObjectID, result models.PaymentResult, at time.Time) (*models.Order, error)
	MarkDelivered(ctx context.Context, id bson.ObjectID, at time.Time) (*models.Order, error)
	Cancel(ctx context.Context, order *models.Order, by bson.ObjectID, at time.Time) (*models.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailOrProvider(ctx context.Context, email, providerField, providerID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

type AnalyticsRepository interface {
	Summary(ctx context.Context) (*models.Summary, error)
	SalesOverTime(ctx context.Context) ([]models.MonthlySales, error)
}

// orNotFound replaces a repository not-found error with message for the client.
func orNotFound(err error, message string) error {
	if errors.Is(err, global.ErrNotFound) {
		return global.NewError(global.ErrNotFound, message)
	}
	return err
}
