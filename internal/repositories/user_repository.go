package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UserExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	GetUserSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error)
	SearchUsers(ctx context.Context, pattern string) ([]models.UserSummary, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// summaryProjection is the public identity joined into posts and lists
var summaryProjection = bson.M{"username": 1, "bio": 1, "profilePicture": 1}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new user. Relation sets start empty so $addToSet/$pull apply cleanly.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrEmailTaken
	}
	return err
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user with email: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// UserExists reports whether an account with id is still stored.
func (r *MongoUserRepository) UserExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetUserSummaries loads the identity of every listed user in one query.
// Unknown ids are absent from the result.
func (r *MongoUserRepository) GetUserSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := r.collection.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(summaryProjection),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.UserSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	for _, s := range summaries {
		out[s.ID] = s
	}
	return out, nil
}

// SearchUsers matches pattern as a literal, case-insensitive substring of the username
func (r *MongoUserRepository) SearchUsers(ctx context.Context, pattern string) ([]models.UserSummary, error) {
	filter := bson.M{"username": primitive.Regex{Pattern: regexp.QuoteMeta(pattern), Options: "i"}}
	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetProjection(bson.M{"username": 1, "profilePicture": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.UserSummary{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser persists the editable profile fields
func (r *MongoUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"username":       user.Username,
			"bio":            user.Bio,
			"profilePicture": user.ProfilePicture,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", user.ID.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return nil
}
