package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error)
	GetPostsByMediaType(ctx context.Context, kind models.MediaKind) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	RemoveUserActivity(ctx context.Context, userID primitive.ObjectID) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.Media == nil {
		post.Media = []models.Media{}
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

func (r *MongoPostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("post %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts returns every post, newest first
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return r.find(ctx, bson.M{})
}

// GetPostsByUserID returns the posts owned by userID, newest first
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return r.find(ctx, bson.M{"user": userID})
}

// GetPostsByMediaType returns posts carrying at least one media item of kind, newest first
func (r *MongoPostRepository) GetPostsByMediaType(ctx context.Context, kind models.MediaKind) ([]models.Post, error) {
	return r.find(ctx, bson.M{"media.type": kind})
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost persists the editable fields: title, description and media
func (r *MongoPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	media := post.Media
	if media == nil {
		media = []models.Media{}
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{
		"$set": bson.M{
			"title":       post.Title,
			"description": post.Description,
			"media":       media,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post %s: %w", post.ID.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

func (r *MongoPostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("post %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// RemoveUserActivity strips every like and comment authored by userID from all posts.
func (r *MongoPostRepository) RemoveUserActivity(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"$or": bson.A{bson.M{"likes.user": userID}, bson.M{"comments.user": userID}}},
		bson.M{"$pull": bson.M{
			"likes":    bson.M{"user": userID},
			"comments": bson.M{"user": userID},
		}},
	)
	return err
}
