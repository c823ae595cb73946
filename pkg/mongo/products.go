package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

type ProductStore struct {
	collection *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{collection: db.Collection(ProductsCollection)}
}

func catalogFilter(keyword, category string) bson.D {
	filter := bson.D{}
	if keyword != "" {
		filter = append(filter, bson.E{Key: "name", Value: bson.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}})
	}
	if category != "" {
		filter = append(filter, bson.E{Key: "category", Value: category})
	}
	return filter
}

// List returns one page of products matching keyword and category along with
// the total number of matches.
func (s *ProductStore) List(ctx context.Context, keyword, category string, page, pageSize int) ([]models.Product, int64, error) {
	filter := catalogFilter(keyword, category)

	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetLimit(int64(pageSize)).
		SetSkip(int64(pageSize * (page - 1))).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	products, err := s.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (s *ProductStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %s: %w", id.Hex(), global.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductStore) Top(ctx context.Context, limit int) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}}).SetLimit(int64(limit))
	return s.find(ctx, bson.D{}, opts)
}

func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	result := s.collection.Distinct(ctx, "category", bson.D{})
	if err := result.Err(); err != nil {
		return nil, err
	}

	var categories []string
	if err := result.Decode(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Related returns up to limit other products from the same category.
func (s *ProductStore) Related(ctx context.Context, product *models.Product, limit int) ([]models.Product, error) {
	filter := bson.D{
		{Key: "category", Value: product.Category},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: product.ID}}},
	}
	return s.find(ctx, filter, options.Find().SetLimit(int64(limit)))
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = bson.NewObjectID()
	}
	_, err := s.collection.InsertOne(ctx, product)
	return err
}

// Update saves the editable fields of product. Reviews and the rating
// aggregates are left to AddReview.
func (s *ProductStore) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: product.Name},
		{Key: "image", Value: product.Image},
		{Key: "brand", Value: product.Brand},
		{Key: "category", Value: product.Category},
		{Key: "description", Value: product.Description},
		{Key: "price", Value: product.Price},
		{Key: "countInStock", Value: product.CountInStock},
		{Key: "updatedAt", Value: product.UpdatedAt},
	}}}

	var updated models.Product
	err := s.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: product.ID}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %s: %w", product.ID.Hex(), global.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ProductStore) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("product %s: %w", id.Hex(), global.ErrNotFound)
	}
	return nil
}

// AddReview appends review and recomputes numReviews and rating in a single
// update, so concurrent reviews cannot overwrite each other's aggregates.
// The filter rejects a second review by the same user.
func (s *ProductStore) AddReview(ctx context.Context, productID bson.ObjectID, review models.Review) (*models.Product, error) {
	if review.ID.IsZero() {
		review.ID = bson.NewObjectID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	var updated models.Product
	err := s.collection.FindOneAndUpdate(ctx, reviewFilter(productID, review.User), reviewUpdate(review),
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Nothing matched: either the product is gone or the user already reviewed it.
	if _, findErr := s.FindByID(ctx, productID); findErr != nil {
		return nil, findErr
	}
	return nil, models.ErrAlreadyReviewed
}

// reviewFilter matches the product only if userID has not reviewed it yet.
func reviewFilter(productID, userID bson.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: productID},
		{Key: "reviews.user", Value: bson.D{{Key: "$ne", Value: userID}}},
	}
}

// reviewUpdate appends review and recomputes the aggregates from the
// resulting array in the same update.
func reviewUpdate(review models.Review) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "reviews", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$reviews", bson.A{}}}},
				bson.D{{Key: "$literal", Value: bson.A{review}}},
			}}}},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "numReviews", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
			{Key: "rating", Value: bson.D{{Key: "$avg", Value: "$reviews.rating"}}},
			{Key: "updatedAt", Value: review.CreatedAt},
		}}},
	}
}

// AdjustStock adds delta to countInStock and returns the product as it was
// before the change. Missing products yield global.ErrNotFound.
func (s *ProductStore) AdjustStock(ctx context.Context, productID bson.ObjectID, delta int) (*models.Product, error) {
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "countInStock", Value: delta}}}}

	var before models.Product
	err := s.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: productID}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.Before)).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %s: %w", productID.Hex(), global.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &before, nil
}

func (s *ProductStore) InsertMany(ctx context.Context, products []models.Product) error {
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	_, err := s.collection.InsertMany(ctx, docs)
	return err
}

func (s *ProductStore) DeleteAll(ctx context.Context) error {
	_, err := s.collection.DeleteMany(ctx, bson.D{})
	return err
}

func (s *ProductStore) find(ctx context.Context, filter interface{}, opts *options.FindOptionsBuilder) ([]models.Product, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
