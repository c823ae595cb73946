package services

import (
	"context"
	"errors"
	"math"

	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

const (
	PageSize            = 8
	topProductsLimit    = 3
	recommendationLimit = 4
)

type CatalogService struct {
	products ProductRepository
	cache    ProductCache
}

// NewCatalogService wires the catalog. cache may be nil.
func NewCatalogService(products ProductRepository, cache ProductCache) *CatalogService {
	return &CatalogService{products: products, cache: cache}
}

// maxPage is the largest page whose offset fits in an int.
const maxPage = math.MaxInt/PageSize + 1

// List returns one page of at most PageSize products. Pages start at 1; any
// smaller page number is treated as the first page. A page past maxPage is
// empty.
func (s *CatalogService) List(ctx context.Context, keyword, category string, page int) (*models.ProductPage, error) {
	if page < 1 {
		page = 1
	}

	query := page
	if page > maxPage {
		query = 1
	}
	products, count, err := s.products.List(ctx, keyword, category, query, PageSize)
	if err != nil {
		return nil, err
	}
	if query != page {
		products = []models.Product{}
	}

	return &models.ProductPage{
		Products: products,
		Page:     page,
		Pages:    int(math.Ceil(float64(count) / float64(PageSize))),
	}, nil
}

func (s *CatalogService) Get(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	if s.cache != nil {
		if product, err := s.cache.Get(ctx, id); err == nil {
			return product, nil
		}
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "Product not found")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			global.Log.WithError(err).WithField("product", id.Hex()).Warn("Failed to cache product")
		}
	}
	return product, nil
}

func (s *CatalogService) Top(ctx context.Context) ([]models.Product, error) {
	return s.products.Top(ctx, topProductsLimit)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// Recommendations returns other products from the same category as id.
func (s *CatalogService) Recommendations(ctx context.Context, id bson.ObjectID) ([]models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "Product not found")
	}
	return s.products.Related(ctx, product, recommendationLimit)
}

// CreatePlaceholder stores a sample product owned by admin for editing.
func (s *CatalogService) CreatePlaceholder(ctx context.Context, admin *models.User) (*models.Product, error) {
	product := models.NewPlaceholderProduct(admin.ID)
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, id bson.ObjectID, update models.ProductUpdate) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "Product not found")
	}

	update.Apply(product)
	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, orNotFound(err, "Product not found")
	}

	s.evict(ctx, updated)
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id bson.ObjectID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return orNotFound(err, "Product not found")
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return orNotFound(err, "Product not found")
	}

	s.evict(ctx, product)
	return nil
}

// AddReview records user's review of the product. A second review by the
// same user is a conflict and leaves the product unchanged.
func (s *CatalogService) AddReview(ctx context.Context, user *models.User, productID bson.ObjectID, req models.CreateReviewRequest) (*models.Product, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, global.FieldError(global.ErrValidation, "rating", "Rating must be between 1 and 5")
	}

	review := models.Review{
		User:    user.ID,
		Name:    user.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	product, err := s.products.AddReview(ctx, productID, review)
	if errors.Is(err, models.ErrAlreadyReviewed) {
		return nil, global.NewError(global.ErrConflict, "Product already reviewed")
	}
	if err != nil {
		return nil, orNotFound(err, "Product not found")
	}

	s.evict(ctx, product)
	return product, nil
}

func (s *CatalogService) evict(ctx context.Context, product *models.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, product.ID); err != nil {
		global.Log.WithError(err).WithField("product", product.ID.Hex()).Warn("Failed to evict product from cache")
	}
}
