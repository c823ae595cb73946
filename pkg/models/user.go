package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a storefront account. Password holds the bcrypt hash and is never
// serialized to clients.
type User struct {
	ID        bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string        `json:"name" bson:"name"`
	Email     string        `json:"email" bson:"email"`
	Password  string        `json:"-" bson:"password"`
	IsAdmin   bool          `json:"isAdmin" bson:"isAdmin"`
	GoogleID  string        `json:"googleId,omitempty" bson:"googleId,omitempty"`
	GitHubID  string        `json:"githubId,omitempty" bson:"githubId,omitempty"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// SetTimestamps sets createdAt on first call and always updates updatedAt
func (u *User) SetTimestamps() {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// AuthResponse is returned by register, login and OAuth callbacks.
type AuthResponse struct {
	ID      bson.ObjectID `json:"_id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	IsAdmin bool          `json:"isAdmin"`
	Token   string        `json:"token"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// AdminUpdateUserRequest uses a pointer for IsAdmin so that omitting the
// field keeps the current role.
type AdminUpdateUserRequest struct {
	Name    string `json:"name" binding:"omitempty,min=2,max=100"`
	Email   string `json:"email" binding:"omitempty,email"`
	IsAdmin *bool  `json:"isAdmin"`
}

// OAuthIdentity is what a provider tells us about the person signing in.
type OAuthIdentity struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
	Username   string
}
