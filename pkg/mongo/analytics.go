package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"storefront.dev/shop/pkg/models"
)

type AnalyticsStore struct {
	orders *mongo.Collection
	users  *mongo.Collection
}

func NewAnalyticsStore(db *mongo.Database) *AnalyticsStore {
	return &AnalyticsStore{
		orders: db.Collection(OrdersCollection),
		users:  db.Collection(UsersCollection),
	}
}

// Summary counts orders and users and sums totalPrice over all orders.
func (s *AnalyticsStore) Summary(ctx context.Context) (*models.Summary, error) {
	totalOrders, err := s.orders.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.users.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	pipeline := bson.A{
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: nil},
				{Key: "totalSales", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
			}},
		},
	}

	cursor, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var totals []struct {
		TotalSales float64 `bson:"totalSales"`
	}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}

	summary := &models.Summary{TotalOrders: totalOrders, TotalUsers: totalUsers}
	if len(totals) > 0 {
		summary.TotalSales = totals[0].TotalSales
	}
	return summary, nil
}

// SalesOverTime groups orders by the year and month they were created in.
func (s *AnalyticsStore) SalesOverTime(ctx context.Context) ([]models.MonthlySales, error) {
	pipeline := bson.A{
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: bson.D{
					{Key: "year", Value: bson.D{{Key: "$year", Value: "$createdAt"}}},
					{Key: "month", Value: bson.D{{Key: "$month", Value: "$createdAt"}}},
				}},
				{Key: "totalSales", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
				{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			}},
		},
		bson.D{
			{Key: "$sort", Value: bson.D{
				{Key: "_id.year", Value: 1},
				{Key: "_id.month", Value: 1},
			}},
		},
		bson.D{
			{Key: "$project", Value: bson.D{
				{Key: "_id", Value: 0},
				{Key: "year", Value: "$_id.year"},
				{Key: "month", Value: "$_id.month"},
				{Key: "totalSales", Value: bson.D{{Key: "$round", Value: bson.A{"$totalSales", 2}}}},
				{Key: "count", Value: 1},
			}},
		},
	}

	cursor, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	series := []models.MonthlySales{}
	if err := cursor.All(ctx, &series); err != nil {
		return nil, err
	}
	return series, nil
}
