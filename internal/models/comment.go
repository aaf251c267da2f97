package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxCommentLength = 300

// Comment represents a comment embedded in a post
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CommentView is a comment with its author expanded.
type CommentView struct {
	ID        primitive.ObjectID `json:"id"`
	User      UserSummary        `json:"user"`
	Text      string             `json:"text"`
	CreatedAt time.Time          `json:"createdAt"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" form:"text"`
}
