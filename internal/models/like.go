package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like represents one user's like on a post. A post holds at most one like per user.
type Like struct {
	User      primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// LikeView is a like with the liking user expanded.
type LikeView struct {
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}
