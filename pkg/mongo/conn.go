package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"storefront.dev/shop/pkg/global"
)

const (
	UsersCollection         = "users"
	ProductsCollection      = "products"
	OrdersCollection        = "orders"
	InventoryLogsCollection = "inventory_logs"
)

var client *mongo.Client
var database *mongo.Database

func NewMongoClient(uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)

	clientOptions := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	return mongo.Connect(clientOptions)
}

func GetDatabase() *mongo.Database {
	return database
}

func InitMongoDB(cfg *global.Config) {
	var err error
	client, err = NewMongoClient(cfg.MongoURI)
	if err != nil {
		global.Log.Fatalf("Failed to create MongoDB client: %v", err)
	}

	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		global.Log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	database = client.Database(cfg.DatabaseName)
	global.Log.WithField("database", cfg.DatabaseName).Info("Connected to MongoDB successfully")
}

func Ping(ctx context.Context) error {
	return client.Ping(ctx, nil)
}

func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
