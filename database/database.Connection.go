package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UserCollection  = "users"
	TripCollection  = "trips"
	PhotoCollection = "photos"
)

// Connect dials MongoDB and pings it so a bad URI fails at startup rather than on the first request.
func Connect(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("connected to mongodb")
	return client, nil
}

func OpenCollection(client *mongo.Client, databaseName, collectionName string) *mongo.Collection {
	return client.Database(databaseName).Collection(collectionName)
}

// EnsureIndexes creates the unique email index and the lookup indexes the handlers rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users.email index: %w", err)
	}

	_, err = db.Collection(TripCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "isShared", Value: 1}, {Key: "startDate", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create trips indexes: %w", err)
	}

	_, err = db.Collection(PhotoCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "tripId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isShared", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create photos indexes: %w", err)
	}
	return nil
}
