package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

type UserStore struct {
	collection *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{collection: db.Collection(UsersCollection)}
}

// Create inserts user. A second account with the same email fails with
// global.ErrConflict through the unique index.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	_, err := s.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("user %s: %w", user.Email, global.ErrConflict)
	}
	return err
}

func (s *UserStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// FindByEmailOrProvider matches either the email address or the id stored
// under providerField (googleId, githubId).
func (s *UserStore) FindByEmailOrProvider(ctx context.Context, email, providerField, providerID string) (*models.User, error) {
	or := bson.A{}
	if email != "" {
		or = append(or, bson.D{{Key: "email", Value: email}})
	}
	if providerID != "" {
		or = append(or, bson.D{{Key: providerField, Value: providerID}})
	}
	if len(or) == 0 {
		return nil, fmt.Errorf("no email or provider id: %w", global.ErrNotFound)
	}
	return s.findOne(ctx, bson.D{{Key: "$or", Value: or}})
}

// Update saves the mutable fields of user.
func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	set := bson.D{
		{Key: "name", Value: user.Name},
		{Key: "email", Value: user.Email},
		{Key: "password", Value: user.Password},
		{Key: "isAdmin", Value: user.IsAdmin},
		{Key: "updatedAt", Value: user.UpdatedAt},
	}
	if user.GoogleID != "" {
		set = append(set, bson.E{Key: "googleId", Value: user.GoogleID})
	}
	if user.GitHubID != "" {
		set = append(set, bson.E{Key: "githubId", Value: user.GitHubID})
	}

	result, err := s.collection.UpdateByID(ctx, user.ID, bson.D{{Key: "$set", Value: set}})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("user %s: %w", user.Email, global.ErrConflict)
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", user.ID.Hex(), global.ErrNotFound)
	}
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), global.ErrNotFound)
	}
	return nil
}

func (s *UserStore) InsertMany(ctx context.Context, users []models.User) error {
	docs := make([]interface{}, len(users))
	for i := range users {
		docs[i] = users[i]
	}
	_, err := s.collection.InsertMany(ctx, docs)
	return err
}

func (s *UserStore) DeleteAll(ctx context.Context) error {
	_, err := s.collection.DeleteMany(ctx, bson.D{})
	return err
}

func (s *UserStore) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user: %w", global.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
