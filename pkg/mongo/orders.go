package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

type OrderStore struct {
	client        *mongo.Client
	orders        *mongo.Collection
	products      *ProductStore
	inventoryLogs *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{
		client:        db.Client(),
		orders:        db.Collection(OrdersCollection),
		products:      NewProductStore(db),
		inventoryLogs: db.Collection(InventoryLogsCollection),
	}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = bson.NewObjectID()
	}
	_, err := s.orders.InsertOne(ctx, order)
	return err
}

func (s *OrderStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("order %s: %w", id.Hex(), global.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.orders.Find(ctx, bson.D{{Key: "user", Value: userID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllWithUsers returns every order joined with its purchaser, newest first.
func (s *OrderStore) FindAllWithUsers(ctx context.Context) ([]models.OrderWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UsersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userInfo"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$userInfo"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.OrderWithUser{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Guards for each transition, expressed on the flags so that documents
// written before the status field existed are handled the same way.
var (
	unpaidGuard = bson.D{
		{Key: "isPaid", Value: false},
		{Key: "isCancelled", Value: false},
	}
	undeliveredGuard = bson.D{
		{Key: "isPaid", Value: true},
		{Key: "isDelivered", Value: false},
		{Key: "isCancelled", Value: false},
	}
)

// MarkPaid moves an unpaid order to paid. If the order changed since it was
// read the update matches nothing and global.ErrConflict is returned.
func (s *OrderStore) MarkPaid(ctx context.Context, id bson.ObjectID, result models.PaymentResult, at time.Time) (*models.Order, error) {
	set := bson.D{
		{Key: "status", Value: models.StatusPaid},
		{Key: "isPaid", Value: true},
		{Key: "paidAt", Value: at},
		{Key: "paymentResult", Value: result},
		{Key: "updatedAt", Value: at},
	}
	return s.transition(ctx, id, unpaidGuard, set)
}

func (s *OrderStore) MarkDelivered(ctx context.Context, id bson.ObjectID, at time.Time) (*models.Order, error) {
	set := bson.D{
		{Key: "status", Value: models.StatusDelivered},
		{Key: "isDelivered", Value: true},
		{Key: "deliveredAt", Value: at},
		{Key: "updatedAt", Value: at},
	}
	return s.transition(ctx, id, undeliveredGuard, set)
}

// Cancel restores stock for every line of order and marks it cancelled in one
// transaction. Lines whose product no longer exists are skipped. Transactions
// need a replica set or sharded cluster; on a standalone server this fails.
func (s *OrderStore) Cancel(ctx context.Context, order *models.Order, by bson.ObjectID, at time.Time) (*models.Order, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(txCtx context.Context) (interface{}, error) {
		for _, item := range order.OrderItems {
			before, err := s.products.AdjustStock(txCtx, item.Product, item.Qty)
			if errors.Is(err, global.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}

			entry := models.NewRestockLog(order, item.Product, before.CountInStock, item.Qty, by)
			if _, err := s.inventoryLogs.InsertOne(txCtx, entry); err != nil {
				return nil, err
			}
		}

		set := bson.D{
			{Key: "status", Value: models.StatusCancelled},
			{Key: "isCancelled", Value: true},
			{Key: "cancelledAt", Value: at},
			{Key: "updatedAt", Value: at},
		}
		return s.transition(txCtx, order.ID, unpaidGuard, set)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Order), nil
}

func transitionFilter(id bson.ObjectID, guard bson.D) bson.D {
	filter := bson.D{{Key: "_id", Value: id}}
	return append(filter, guard...)
}

func (s *OrderStore) transition(ctx context.Context, id bson.ObjectID, guard bson.D, set bson.D) (*models.Order, error) {
	update := bson.D{{Key: "$set", Value: set}}

	var updated models.Order
	err := s.orders.FindOneAndUpdate(ctx, transitionFilter(id, guard), update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("order %s changed concurrently: %w", id.Hex(), global.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *OrderStore) DeleteAll(ctx context.Context) error {
	_, err := s.orders.DeleteMany(ctx, bson.D{})
	return err
}
