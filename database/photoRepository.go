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

type MongoPhotoRepository struct {
	coll *mongo.Collection
}

func NewMongoPhotoRepository(coll *mongo.Collection) *MongoPhotoRepository {
	return &MongoPhotoRepository{coll: coll}
}

func (r *MongoPhotoRepository) Insert(ctx context.Context, photo *models.Photo) error {
	if _, err := r.coll.InsertOne(ctx, photo); err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

func (r *MongoPhotoRepository) FindByID(ctx context.Context, id string) (*models.Photo, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid}, options.FindOne())
}

func (r *MongoPhotoRepository) LatestByTrip(ctx context.Context, tripID string) (*models.Photo, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findOne(ctx, bson.M{"tripId": tripID}, opts)
}

func (r *MongoPhotoRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*models.Photo, error) {
	var photo models.Photo
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&photo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find photo: %w", err)
	}
	return &photo, nil
}

func (r *MongoPhotoRepository) FindByTrip(ctx context.Context, tripID string) ([]models.Photo, error) {
	return r.find(ctx, bson.M{"tripId": tripID}, options.Find())
}

func (r *MongoPhotoRepository) FindShared(ctx context.Context, limit int64) ([]models.Photo, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.M{"isShared": true}, opts)
}

func (r *MongoPhotoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Photo, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find photos: %w", err)
	}

	photos := []models.Photo{}
	if err := cursor.All(ctx, &photos); err != nil {
		return nil, fmt.Errorf("decode photos: %w", err)
	}
	return photos, nil
}

func (r *MongoPhotoRepository) CountByTrip(ctx context.Context, tripID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"tripId": tripID})
	if err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}

func (r *MongoPhotoRepository) SetShared(ctx context.Context, id string, shared bool) error {
	return r.set(ctx, id, bson.M{"isShared": shared})
}

func (r *MongoPhotoRepository) SetCaption(ctx context.Context, id, caption string) error {
	return r.set(ctx, id, bson.M{"caption": caption})
}

func (r *MongoPhotoRepository) set(ctx context.Context, id string, fields bson.M) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoPhotoRepository) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "userId": ownerID})
	if err != nil {
		return false, fmt.Errorf("delete photo: %w", err)
	}
	return res.DeletedCount > 0, nil
}
