package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spycce/SmartTrip/models"
)

// Every lookup by id returns models.ErrNotFound when nothing matches, including
// when the id is not a valid ObjectID.

type UserRepository interface {
	// Insert fails with models.ErrDuplicateEmail when the email is taken.
	Insert(ctx context.Context, user *models.User) error
	CountByEmail(ctx context.Context, email string) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type TripRepository interface {
	Insert(ctx context.Context, trip *models.Trip) error
	FindByID(ctx context.Context, id string) (*models.Trip, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Trip, error)
	// FindShared returns up to limit shared trips, latest start date first.
	FindShared(ctx context.Context, limit int64) ([]models.Trip, error)
	// DeleteOwned reports whether a trip matching both id and owner was removed.
	DeleteOwned(ctx context.Context, id, ownerID string) (bool, error)
	SetReviews(ctx context.Context, id string, reviews []models.Review) error
	SetShared(ctx context.Context, id string, shared bool) error
}

type PhotoRepository interface {
	Insert(ctx context.Context, photo *models.Photo) error
	FindByID(ctx context.Context, id string) (*models.Photo, error)
	FindByTrip(ctx context.Context, tripID string) ([]models.Photo, error)
	// FindShared returns up to limit shared photos, newest first.
	FindShared(ctx context.Context, limit int64) ([]models.Photo, error)
	CountByTrip(ctx context.Context, tripID string) (int64, error)
	// LatestByTrip returns the newest photo of a trip or models.ErrNotFound.
	LatestByTrip(ctx context.Context, tripID string) (*models.Photo, error)
	SetShared(ctx context.Context, id string, shared bool) error
	SetCaption(ctx context.Context, id, caption string) error
	DeleteOwned(ctx context.Context, id, ownerID string) (bool, error)
}

// Repositories bundles the three stores handed to the services.
type Repositories struct {
	Users  UserRepository
	Trips  TripRepository
	Photos PhotoRepository
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.ErrNotFound
	}
	return oid, nil
}
