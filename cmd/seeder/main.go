package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/auth"
	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
	"storefront.dev/shop/pkg/mongo"
)

type seedUser struct {
	name    string
	email   string
	isAdmin bool
}

var sampleUsers = []seedUser{
	{name: "Admin User", email: "admin@example.com", isAdmin: true},
	{name: "John Doe", email: "john@example.com"},
	{name: "Jane Doe", email: "jane@example.com"},
}

const samplePassword = "123456"

var sampleProducts = []models.Product{
	{
		Name:         "Wireless Bluetooth Headphones",
		Image:        "/images/headphones.jpg",
		Description:  "Experience premium sound quality with these wireless Bluetooth headphones. Features include noise cancellation, long battery life, and comfortable ear cups.",
		Brand:        "Sony",
		Category:     "Electronics",
		Price:        89.99,
		CountInStock: 10,
		Rating:       4.5,
		NumReviews:   12,
	},
	{
		Name:         "iPhone 15 Pro",
		Image:        "/images/iphone.jpg",
		Description:  "The latest iPhone with a stunning display, powerful A17 chip, and an amazing camera system. Experience the future of smartphones.",
		Brand:        "Apple",
		Category:     "Electronics",
		Price:        999.99,
		CountInStock: 7,
		Rating:       4.8,
		NumReviews:   8,
	},
	{
		Name:         "Canon EOS R6 Camera",
		Image:        "/images/camera.jpg",
		Description:  "Professional-grade mirrorless camera with 20MP full-frame sensor, 4K video recording, and advanced autofocus system.",
		Brand:        "Canon",
		Category:     "Electronics",
		Price:        1999.99,
		CountInStock: 5,
		Rating:       4.7,
		NumReviews:   12,
	},
	{
		Name:         "PlayStation 5",
		Image:        "/images/playstation.jpg",
		Description:  "Next-gen gaming console with lightning-fast loading, stunning 4K graphics, and an immersive controller experience.",
		Brand:        "Sony",
		Category:     "Electronics",
		Price:        499.99,
		CountInStock: 11,
		Rating:       5,
		NumReviews:   12,
	},
	{
		Name:         "Mechanical Keyboard",
		Image:        "/images/keyboard.jpg",
		Description:  "RGB backlit mechanical keyboard with customizable keys, tactile feedback, and durable construction for gaming and typing.",
		Brand:        "Logitech",
		Category:     "Electronics",
		Price:        89.99,
		CountInStock: 7,
		Rating:       4.5,
		NumReviews:   10,
	},
	{
		Name:         "Smart Watch Series 8",
		Image:        "/images/smartwatch.jpg",
		Description:  "Track your fitness, monitor your health, and stay connected with this advanced smartwatch featuring GPS, heart rate monitoring, and water resistance.",
		Brand:        "Apple",
		Category:     "Electronics",
		Price:        399.99,
		CountInStock: 0,
		Rating:       4.6,
		NumReviews:   12,
	},
}

type stores struct {
	products *mongo.ProductStore
	orders   *mongo.OrderStore
	users    *mongo.UserStore
}

func main() {
	destroy := flag.Bool("destroy", false, "remove all orders, products and users without importing")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		global.Log.Warn("No .env file found, reading configuration from the environment")
	}

	cfg := global.LoadConfig()
	mongo.InitMongoDB(cfg)

	db := mongo.GetDatabase()
	s := stores{
		products: mongo.NewProductStore(db),
		orders:   mongo.NewOrderStore(db),
		users:    mongo.NewUserStore(db),
	}

	ctx := context.Background()
	if err := s.clear(ctx); err != nil {
		global.Log.Fatalf("Failed to clear data: %v", err)
	}
	if *destroy {
		global.Log.Info("Data destroyed")
		return
	}

	if err := s.importData(ctx); err != nil {
		global.Log.Fatalf("Failed to import data: %v", err)
	}
	global.Log.WithFields(logrus.Fields{
		"users":    len(sampleUsers),
		"products": len(sampleProducts),
	}).Info("Data imported")
}

func (s stores) clear(ctx context.Context) error {
	if err := s.orders.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.products.DeleteAll(ctx); err != nil {
		return err
	}
	return s.users.DeleteAll(ctx)
}

func (s stores) importData(ctx context.Context) error {
	hash, err := auth.HashPassword(samplePassword)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, len(sampleUsers))
	for _, u := range sampleUsers {
		user := models.User{
			ID:       bson.NewObjectID(),
			Name:     u.name,
			Email:    u.email,
			Password: hash,
			IsAdmin:  u.isAdmin,
		}
		user.SetTimestamps()
		users = append(users, user)
	}
	if err := s.users.InsertMany(ctx, users); err != nil {
		return err
	}

	admin := users[0].ID
	products := make([]models.Product, 0, len(sampleProducts))
	for _, p := range sampleProducts {
		p.ID = bson.NewObjectID()
		p.User = admin
		p.Reviews = []models.Review{}
		p.SetTimestamps()
		products = append(products, p)
	}
	return s.products.InsertMany(ctx, products)
}
