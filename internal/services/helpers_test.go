package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

func newProduct(name, category string, price float64, stock int) models.Product {
	return models.Product{
		ID:           bson.NewObjectID(),
		Name:         name,
		Category:     category,
		Price:        price,
		CountInStock: stock,
		Reviews:      []models.Review{},
	}
}

func newUser(name string, admin bool) *models.User {
	return &models.User{ID: bson.NewObjectID(), Name: name, Email: name + "@example.com", IsAdmin: admin}
}

func assertStatus(t *testing.T, err error, status int, message string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Equal(t, status, global.StatusFor(err))
		if message != "" {
			assert.Equal(t, message, global.ResponseFor(err).Message)
		}
	}
}

var shipping = models.ShippingAddress{Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"}

