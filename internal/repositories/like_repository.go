package repositories

import (
	"context"
	"fmt"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikeRepository defines the interface for like operations on a post's embedded like list
type LikeRepository interface {
	AddLike(ctx context.Context, postID primitive.ObjectID, like models.Like) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	posts *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{posts: db.Collection("posts")}
}

// AddLike appends like unless the user already liked the post. The guard is part of
// the update filter, so concurrent likes by the same user cannot both land.
func (r *MongoLikeRepository) AddLike(ctx context.Context, postID primitive.ObjectID, like models.Like) error {
	res, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "likes.user": bson.M{"$ne": like.User}},
		bson.M{"$push": bson.M{"likes": like}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return r.missOrConflict(ctx, postID, apperrors.ErrAlreadyLiked)
}

// RemoveLike pulls the user's like entry
func (r *MongoLikeRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	res, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "likes.user": userID},
		bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return r.missOrConflict(ctx, postID, apperrors.ErrNotLiked)
}

func (r *MongoLikeRepository) missOrConflict(ctx context.Context, postID primitive.ObjectID, conflict error) error {
	n, err := r.posts.CountDocuments(ctx, bson.M{"_id": postID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("post %s: %w", postID.Hex(), apperrors.ErrNotFound)
	}
	return conflict
}
