package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username       string               `json:"username" bson:"username"`
	Email          string               `json:"email" bson:"email"`
	Password       string               `json:"-" bson:"password"` // bcrypt hash, never serialized
	Bio            string               `json:"bio" bson:"bio,omitempty"`
	ProfilePicture string               `json:"profilePicture" bson:"profilePicture,omitempty"`
	Followers      []primitive.ObjectID `json:"followers" bson:"followers"`
	Following      []primitive.ObjectID `json:"following" bson:"following"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
}

// IsFollowing reports whether u follows the user with the given id.
func (u *User) IsFollowing(id primitive.ObjectID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}

// UserSummary is the identity slice of a user joined into posts, likes, comments and follow lists.
type UserSummary struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Username       string             `json:"username" bson:"username"`
	Bio            string             `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfilePicture string             `json:"profilePicture" bson:"profilePicture,omitempty"`
}

// Summary returns the public identity of u including the bio.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
	}
}

// Identity drops the bio; used where only {username, profilePicture} is exposed.
func (s UserSummary) Identity() UserSummary {
	s.Bio = ""
	return s
}

type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UpdateProfileRequest carries the text fields of a profile edit; empty means unchanged.
type UpdateProfileRequest struct {
	Username string `json:"username" form:"username"`
	Bio      string `json:"bio" form:"bio"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
