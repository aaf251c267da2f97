package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FollowRepository maintains the mirrored following/followers sets on user documents.
//
// Each operation touches two documents. Without transactions the writes are applied
// follower side first, then target side; a failure in between leaves the relation
// asymmetric until the next follow/unfollow. Nothing retries.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, targetID primitive.ObjectID) error
	Unfollow(ctx context.Context, followerID, targetID primitive.ObjectID) error
	RemoveFromGraph(ctx context.Context, userID primitive.ObjectID) error
}

// MongoFollowRepository implements FollowRepository for MongoDB
type MongoFollowRepository struct {
	client        *mongo.Client
	users         *mongo.Collection
	transactional bool
}

// NewMongoFollowRepository creates a new MongoFollowRepository. With transactional set,
// both writes of an operation run in one multi-document transaction (replica set only).
func NewMongoFollowRepository(client *mongo.Client, db *mongo.Database, transactional bool) *MongoFollowRepository {
	return &MongoFollowRepository{
		client:        client,
		users:         db.Collection("users"),
		transactional: transactional,
	}
}

func (r *MongoFollowRepository) Follow(ctx context.Context, followerID, targetID primitive.ObjectID) error {
	return r.run(ctx, func(ctx context.Context) error {
		if _, err := r.users.UpdateByID(ctx, followerID, bson.M{"$addToSet": bson.M{"following": targetID}}); err != nil {
			return err
		}
		_, err := r.users.UpdateByID(ctx, targetID, bson.M{"$addToSet": bson.M{"followers": followerID}})
		return err
	})
}

func (r *MongoFollowRepository) Unfollow(ctx context.Context, followerID, targetID primitive.ObjectID) error {
	return r.run(ctx, func(ctx context.Context) error {
		if _, err := r.users.UpdateByID(ctx, followerID, bson.M{"$pull": bson.M{"following": targetID}}); err != nil {
			return err
		}
		_, err := r.users.UpdateByID(ctx, targetID, bson.M{"$pull": bson.M{"followers": followerID}})
		return err
	})
}

// RemoveFromGraph pulls userID out of every other user's followers and following sets.
func (r *MongoFollowRepository) RemoveFromGraph(ctx context.Context, userID primitive.ObjectID) error {
	return r.run(ctx, func(ctx context.Context) error {
		_, err := r.users.UpdateMany(ctx,
			bson.M{"$or": bson.A{bson.M{"followers": userID}, bson.M{"following": userID}}},
			bson.M{"$pull": bson.M{"followers": userID, "following": userID}},
		)
		return err
	})
}

func (r *MongoFollowRepository) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.transactional {
		return fn(ctx)
	}
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
