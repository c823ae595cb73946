package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"storefront.dev/shop/pkg/global"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Users: login by email, OAuth lookup by provider id
	{
		CollectionName: UsersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email_unique"),
		},
	},
	{
		CollectionName: UsersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "googleId", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("idx_user_google"),
		},
	},
	{
		CollectionName: UsersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "githubId", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("idx_user_github"),
		},
	},

	// Products: category filter and recommendations, top rated
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},
	{
		CollectionName: ProductsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "rating", Value: -1}},
			Options: options.Index().SetName("idx_rating"),
		},
	},

	// Orders: "my orders" and sales-over-time
	{
		CollectionName: OrdersCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_user_orders"),
		},
	},
	{
		CollectionName: OrdersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("idx_order_created"),
		},
	},

	// Inventory logs: product history
	{
		CollectionName: InventoryLogsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "product", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_product_history"),
		},
	},
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	global.Log.Debug("Starting index creation...")

	for _, idxConfig := range requiredIndexes {
		collection := db.Collection(idxConfig.CollectionName)

		indexName, err := collection.Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			global.Log.WithField("collection", idxConfig.CollectionName).Errorf("Error creating index: %v", err)
			return err
		}

		global.Log.WithField("collection", idxConfig.CollectionName).Debugf("Created index '%s'", indexName)
	}

	global.Log.Info("All indexes created successfully")
	return nil
}

func EnsureIndexesOnStartup() {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	if err := EnsureIndexes(ctx, GetDatabase()); err != nil {
		global.Log.Fatalf("Failed to ensure indexes: %v", err)
	}
}
