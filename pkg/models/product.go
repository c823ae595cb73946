package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review is embedded in its product. One review per user per product.
type Review struct {
	ID        bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	User      bson.ObjectID `json:"user" bson:"user"`
	Name      string        `json:"name" bson:"name"`
	Rating    int           `json:"rating" bson:"rating"`
	Comment   string        `json:"comment" bson:"comment"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

// Product represents an item in the catalog. Rating and NumReviews are derived
// from Reviews and must only change through AddReview.
type Product struct {
	ID           bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	User         bson.ObjectID `json:"user" bson:"user"`
	Name         string        `json:"name" bson:"name"`
	Image        string        `json:"image" bson:"image"`
	Brand        string        `json:"brand" bson:"brand"`
	Category     string        `json:"category" bson:"category"`
	Description  string        `json:"description" bson:"description"`
	Price        float64       `json:"price" bson:"price"`
	CountInStock int           `json:"countInStock" bson:"countInStock"`
	Rating       float64       `json:"rating" bson:"rating"`
	NumReviews   int           `json:"numReviews" bson:"numReviews"`
	Reviews      []Review      `json:"reviews" bson:"reviews"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// NewPlaceholderProduct returns the product an admin creates before editing it.
func NewPlaceholderProduct(userID bson.ObjectID) *Product {
	product := &Product{
		ID:           bson.NewObjectID(),
		User:         userID,
		Name:         "Sample name",
		Image:        "/images/sample.jpg",
		Brand:        "Sample brand",
		Category:     "Sample category",
		Description:  "Sample description",
		Price:        0,
		CountInStock: 0,
		NumReviews:   0,
		Reviews:      []Review{},
	}
	product.SetTimestamps()
	return product
}

func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// HasReviewFrom reports whether userID already reviewed the product.
func (p *Product) HasReviewFrom(userID bson.ObjectID) bool {
	for _, r := range p.Reviews {
		if r.User == userID {
			return true
		}
	}
	return false
}

// AddReview appends review and recomputes the derived aggregates.
func (p *Product) AddReview(review Review) error {
	if p.HasReviewFrom(review.User) {
		return ErrAlreadyReviewed
	}
	if review.ID.IsZero() {
		review.ID = bson.NewObjectID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	p.Reviews = append(p.Reviews, review)
	p.RecalculateRating()
	p.UpdatedAt = time.Now()
	return nil
}

// RecalculateRating sets NumReviews and Rating (arithmetic mean) from Reviews.
func (p *Product) RecalculateRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}
	var sum int
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = float64(sum) / float64(p.NumReviews)
}

func (p *Product) IsInStock() bool {
	return p.CountInStock > 0
}

// ProductPage is one page of a catalog query.
type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// ProductUpdate carries the admin edit form. Zero values leave the stored
// field untouched.
type ProductUpdate struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price" binding:"gte=0"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	CountInStock int     `json:"countInStock" binding:"gte=0"`
}

// Apply copies the non-zero fields of u onto p.
func (u *ProductUpdate) Apply(p *Product) {
	if u.Name != "" {
		p.Name = u.Name
	}
	if u.Price != 0 {
		p.Price = u.Price
	}
	if u.Description != "" {
		p.Description = u.Description
	}
	if u.Image != "" {
		p.Image = u.Image
	}
	if u.Brand != "" {
		p.Brand = u.Brand
	}
	if u.Category != "" {
		p.Category = u.Category
	}
	if u.CountInStock != 0 {
		p.CountInStock = u.CountInStock
	}
	p.SetTimestamps()
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"required"`
}
