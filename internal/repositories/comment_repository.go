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

// CommentRepository defines the interface for comments embedded in a post
type CommentRepository interface {
	AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) error
	DeleteComment(ctx context.Context, postID, commentID primitive.ObjectID) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	posts *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{posts: db.Collection("posts")}
}

// AddComment assigns the comment an id and appends it to the post
func (r *MongoCommentRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	res, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post %s: %w", postID.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

func (r *MongoCommentRepository) DeleteComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	res, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("comment %s on post %s: %w", commentID.Hex(), postID.Hex(), apperrors.ErrNotFound)
	}
	return nil
}
