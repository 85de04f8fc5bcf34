package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spycce/SmartTrip/helpers"
)

// NewRepositories builds the repositories for cfg.StoreBackend. The returned close
// function releases the database connection, if any.
func NewRepositories(ctx context.Context, cfg *helpers.Config, logger *slog.Logger) (*Repositories, func(context.Context) error, error) {
	switch cfg.StoreBackend {
	case helpers.BackendMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return &Repositories{
			Users:  NewMemoryUserRepository(),
			Trips:  NewMemoryTripRepository(),
			Photos: NewMemoryPhotoRepository(),
		}, func(context.Context) error { return nil }, nil

	case helpers.BackendMongo:
		client, err := Connect(ctx, cfg.MongoURI, logger)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.DatabaseName)
		if err := EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return &Repositories{
			Users:  NewMongoUserRepository(OpenCollection(client, cfg.DatabaseName, UserCollection)),
			Trips:  NewMongoTripRepository(OpenCollection(client, cfg.DatabaseName, TripCollection)),
			Photos: NewMongoPhotoRepository(OpenCollection(client, cfg.DatabaseName, PhotoCollection)),
		}, client.Disconnect, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
