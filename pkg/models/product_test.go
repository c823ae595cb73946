package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNewPlaceholderProduct(t *testing.T) {
	admin := bson.NewObjectID()
	p := NewPlaceholderProduct(admin)

	assert.Equal(t, "Sample name", p.Name)
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, 0, p.CountInStock)
	assert.Equal(t, 0, p.NumReviews)
	assert.Equal(t, admin, p.User)
	assert.False(t, p.ID.IsZero())
	assert.NotNil(t, p.Reviews)
}

func TestAddReview_RatingIsMean(t *testing.T) {
	p := NewPlaceholderProduct(bson.NewObjectID())
	ratings := []int{5, 4, 2, 1}

	for _, r := range ratings {
		require.NoError(t, p.AddReview(Review{User: bson.NewObjectID(), Rating: r, Comment: "ok"}))
	}

	assert.Equal(t, 4, p.NumReviews)
	assert.InDelta(t, 3.0, p.Rating, 1e-9)
}

func TestAddReview_DuplicateUserRejected(t *testing.T) {
	p := NewPlaceholderProduct(bson.NewObjectID())
	user := bson.NewObjectID()

	require.NoError(t, p.AddReview(Review{User: user, Rating: 5}))
	err := p.AddReview(Review{User: user, Rating: 1})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Equal(t, 1, p.NumReviews)
	assert.Equal(t, 5.0, p.Rating)
}

func TestProductUpdate_Apply_KeepsZeroFields(t *testing.T) {
	p := NewPlaceholderProduct(bson.NewObjectID())
	p.CountInStock = 7

	update := ProductUpdate{Name: "Headphones", Price: 89.99}
	update.Apply(p)

	assert.Equal(t, "Headphones", p.Name)
	assert.Equal(t, 89.99, p.Price)
	assert.Equal(t, "Sample brand", p.Brand)
	assert.Equal(t, 7, p.CountInStock)
}
