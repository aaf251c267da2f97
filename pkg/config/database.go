package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB holds the MongoDB client and the application database handle
type DB struct {
	Mongo    *mongo.Client
	Database *mongo.Database
}

// InitDB connects to MongoDB, verifies the connection and makes sure indexes exist
func InitDB(cfg *Config) (*DB, error) {
	client, err := initMongo(cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	db := &DB{
		Mongo:    client,
		Database: client.Database(cfg.MongoDatabase),
	}

	if err := db.ensureIndexes(); err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	slog.Info("connected to MongoDB")
	return client, nil
}

func (db *DB) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, err := db.Database.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Database.Collection("posts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "media.type", Value: 1}}},
	})
	return err
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	if db.Mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Mongo.Disconnect(ctx); err != nil {
		slog.Error("error closing MongoDB connection", "error", err)
		return
	}
	slog.Info("MongoDB connection closed")
}
