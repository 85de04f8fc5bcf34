package services

import (
	"context"
	"errors"
	"sort"

	"github.com/spycce/SmartTrip/database"
	"github.com/spycce/SmartTrip/models"
)

const (
	landingTripLimit  = 6
	landingPhotoLimit = 10
)

// FeedService assembles read-only views across trips and photos.
type FeedService struct {
	trips  database.TripRepository
	photos database.PhotoRepository
}

func NewFeedService(trips database.TripRepository, photos database.PhotoRepository) *FeedService {
	return &FeedService{trips: trips, photos: photos}
}

// Landing returns the latest shared trips and photos for the unauthenticated home page.
func (s *FeedService) Landing(ctx context.Context) (*models.LandingFeed, error) {
	trips, err := s.trips.FindShared(ctx, landingTripLimit)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		normalizeTrip(&trips[i])
	}

	photos, err := s.photos.FindShared(ctx, landingPhotoLimit)
	if err != nil {
		return nil, err
	}

	return &models.LandingFeed{Trips: trips, Photos: models.PhotoViews(photos)}, nil
}

// Albums returns one summary per trip of ownerID, latest start date first.
func (s *FeedService) Albums(ctx context.Context, ownerID string) ([]models.Album, error) {
	trips, err := s.trips.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].StartDate.After(trips[j].StartDate.Time)
	})

	albums := make([]models.Album, 0, len(trips))
	for _, trip := range trips {
		tripID := trip.ID.Hex()

		count, err := s.photos.CountByTrip(ctx, tripID)
		if err != nil {
			return nil, err
		}

		album := models.Album{
			TripID:     tripID,
			Title:      trip.From + " to " + trip.To,
			StartDate:  trip.StartDate,
			PhotoCount: count,
		}

		cover, err := s.photos.LatestByTrip(ctx, tripID)
		switch {
		case err == nil:
			image := models.DataURI(cover.ContentType, cover.Image)
			album.CoverImage = &image
		case !errors.Is(err, models.ErrNotFound):
			return nil, err
		}

		albums = append(albums, album)
	}
	return albums, nil
}
