package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spycce/SmartTrip/models"
)

type MongoTripRepository struct {
	coll *mongo.Collection
}

func NewMongoTripRepository(coll *mongo.Collection) *MongoTripRepository {
	return &MongoTripRepository{coll: coll}
}

func (r *MongoTripRepository) Insert(ctx context.Context, trip *models.Trip) error {
	if _, err := r.coll.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (r *MongoTripRepository) FindByID(ctx context.Context, id string) (*models.Trip, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var trip models.Trip
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&trip); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return &trip, nil
}

func (r *MongoTripRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Trip, error) {
	return r.find(ctx, bson.M{"userId": ownerID}, options.Find())
}

func (r *MongoTripRepository) FindShared(ctx context.Context, limit int64) ([]models.Trip, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "startDate", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.M{"isShared": true}, opts)
}

func (r *MongoTripRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Trip, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find trips: %w", err)
	}

	trips := []models.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("decode trips: %w", err)
	}
	return trips, nil
}

func (r *MongoTripRepository) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "userId": ownerID})
	if err != nil {
		return false, fmt.Errorf("delete trip: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoTripRepository) SetReviews(ctx context.Context, id string, reviews []models.Review) error {
	return r.set(ctx, id, bson.M{"reviews": reviews})
}

func (r *MongoTripRepository) SetShared(ctx context.Context, id string, shared bool) error {
	return r.set(ctx, id, bson.M{"isShared": shared})
}

func (r *MongoTripRepository) set(ctx context.Context, id string, fields bson.M) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update trip: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
