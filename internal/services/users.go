package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/auth"
	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

type UserService struct {
	users  UserRepository
	tokens *auth.TokenIssuer
}

func NewUserService(users UserRepository, tokens *auth.TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, global.FieldError(global.ErrValidation, "email", "User already exists")
	} else if !errors.Is(err, global.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: strings.TrimSpace(req.Name), Email: email, Password: hash}
	user.SetTimestamps()
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, global.ErrConflict) {
			return nil, global.FieldError(global.ErrValidation, "email", "User already exists")
		}
		return nil, err
	}

	global.Log.WithField("user", user.ID.Hex()).Info("User registered")
	return s.authResponse(user)
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil && !errors.Is(err, global.ErrNotFound) {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		return nil, global.NewError(global.ErrUnauthorized, "Invalid email or password")
	}
	return s.authResponse(user)
}

// Authenticate resolves a bearer token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, global.NewError(global.ErrUnauthorized, "Not authorized, token failed")
	}

	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, global.ErrNotFound) {
		return nil, global.NewError(global.ErrUnauthorized, "Not authorized, user not found")
	}
	return user, err
}

func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, req models.UpdateProfileRequest) (*models.AuthResponse, error) {
	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		user.Email = normalizeEmail(req.Email)
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return s.authResponse(user)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "User not found")
	}
	return user, nil
}

func (s *UserService) AdminUpdate(ctx context.Context, id bson.ObjectID, req models.AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		user.Email = normalizeEmail(req.Email)
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a customer account. Admin accounts cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id bson.ObjectID) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return global.NewError(global.ErrValidation, "Cannot delete admin user")
	}
	return orNotFound(s.users.Delete(ctx, id), "User not found")
}

// OAuthLogin signs in the person behind identity. An existing account with
// the same email (or, for GitHub, the same provider id) is linked; otherwise
// a new account is created with a random password nobody knows.
func (s *UserService) OAuthLogin(ctx context.Context, identity *models.OAuthIdentity) (*models.AuthResponse, error) {
	email := normalizeEmail(identity.Email)
	if email == "" && identity.Username != "" && identity.Provider == auth.ProviderGitHub {
		email = strings.ToLower(identity.Username) + "@github.com"
	}
	if email == "" {
		return nil, global.NewError(global.ErrValidation, "No email address available from provider")
	}

	var (
		user *models.User
		err  error
	)
	switch identity.Provider {
	case auth.ProviderGitHub:
		user, err = s.users.FindByEmailOrProvider(ctx, email, "githubId", identity.ProviderID)
	default:
		user, err = s.users.FindByEmail(ctx, email)
	}
	if err != nil && !errors.Is(err, global.ErrNotFound) {
		return nil, err
	}

	if user != nil {
		if linkProvider(user, identity) {
			if err := s.save(ctx, user); err != nil {
				return nil, err
			}
		}
		return s.authResponse(user)
	}

	hash, err := auth.HashPassword(auth.RandomPassword())
	if err != nil {
		return nil, err
	}

	name := identity.Name
	if name == "" {
		name = identity.Username
	}
	user = &models.User{Name: name, Email: email, Password: hash}
	linkProvider(user, identity)
	user.SetTimestamps()
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	global.Log.WithField("user", user.ID.Hex()).WithField("provider", identity.Provider).Info("User created from OAuth login")
	return s.authResponse(user)
}

// linkProvider stores the provider id on user if it is not set yet and
// reports whether anything changed.
func linkProvider(user *models.User, identity *models.OAuthIdentity) bool {
	switch identity.Provider {
	case auth.ProviderGoogle:
		if user.GoogleID == "" {
			user.GoogleID = identity.ProviderID
			return true
		}
	case auth.ProviderGitHub:
		if user.GitHubID == "" {
			user.GitHubID = identity.ProviderID
			return true
		}
	}
	return false
}

func (s *UserService) save(ctx context.Context, user *models.User) error {
	user.SetTimestamps()
	err := s.users.Update(ctx, user)
	if errors.Is(err, global.ErrConflict) {
		return global.FieldError(global.ErrValidation, "email", "User already exists")
	}
	return orNotFound(err, "User not found")
}

func (s *UserService) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
