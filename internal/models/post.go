package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxPostMedia         = 5
)

// Post represents a post stored in MongoDB. Likes and comments are embedded.
type Post struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User        primitive.ObjectID `json:"user" bson:"user"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description,omitempty"`
	Media       []Media            `json:"media" bson:"media"`
	Likes       []Like             `json:"likes" bson:"likes"`
	Comments    []Comment          `json:"comments" bson:"comments"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// HasMediaType reports whether any media item of p is of kind k.
func (p *Post) HasMediaType(k MediaKind) bool {
	for _, m := range p.Media {
		if m.Type == k {
			return true
		}
	}
	return false
}

// PostView is a post with its owner joined in.
type PostView struct {
	ID          primitive.ObjectID `json:"id"`
	User        UserSummary        `json:"user"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Media       []Media            `json:"media"`
	Likes       []Like             `json:"likes"`
	Comments    []Comment          `json:"comments"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func NewPostView(p Post, owner UserSummary) PostView {
	return PostView{
		ID:          p.ID,
		User:        owner,
		Title:       p.Title,
		Description: p.Description,
		Media:       nonNil(p.Media),
		Likes:       nonNil(p.Likes),
		Comments:    nonNil(p.Comments),
		CreatedAt:   p.CreatedAt,
	}
}

// CreatePostRequest carries the text fields of the multipart upload form
type CreatePostRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
