package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spycce/SmartTrip/database"
	"github.com/spycce/SmartTrip/helpers"
	"github.com/spycce/SmartTrip/models"
)

// PhotoService stores images inline in the document store and hands them back as data URIs.
type PhotoService struct {
	photos database.PhotoRepository
	clock  helpers.Clock
	logger *slog.Logger
}

func NewPhotoService(photos database.PhotoRepository, clock helpers.Clock, logger *slog.Logger) *PhotoService {
	return &PhotoService{photos: photos, clock: clock, logger: logger.With("component", "photos")}
}

type UploadInput struct {
	OwnerID     string
	TripID      string
	Image       []byte
	ContentType string
	Caption     string
	IsShared    bool
}

func (s *PhotoService) Upload(ctx context.Context, in UploadInput) (*models.PhotoView, error) {
	if len(in.Image) == 0 {
		return nil, fmt.Errorf("%w: no image uploaded", models.ErrBadRequest)
	}
	if len(in.Image) > models.MaxPhotoBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", models.ErrPayloadTooLarge, models.MaxPhotoBytes)
	}
	contentType := in.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(in.Image)
	}

	photo := &models.Photo{
		ID:          primitive.NewObjectID(),
		UserID:      in.OwnerID,
		TripID:      in.TripID,
		Image:       in.Image,
		ContentType: contentType,
		IsShared:    in.IsShared,
		Caption:     in.Caption,
		Created_At:  s.clock.Now().UTC(),
	}
	if err := s.photos.Insert(ctx, photo); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "photo uploaded",
		"photo_id", photo.ID.Hex(), "trip_id", in.TripID, "bytes", len(in.Image))
	view := photo.View()
	return &view, nil
}

// ListByTrip returns every photo of the trip, shared or not.
func (s *PhotoService) ListByTrip(ctx context.Context, tripID string) ([]models.PhotoView, error) {
	photos, err := s.photos.FindByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return models.PhotoViews(photos), nil
}

func (s *PhotoService) ToggleShare(ctx context.Context, ownerID, photoID string) (bool, error) {
	photo, err := s.owned(ctx, ownerID, photoID)
	if err != nil {
		return false, err
	}

	shared := !photo.IsShared
	if err := s.photos.SetShared(ctx, photoID, shared); err != nil {
		return false, err
	}
	return shared, nil
}

func (s *PhotoService) UpdateCaption(ctx context.Context, ownerID, photoID, caption string) (*models.PhotoView, error) {
	photo, err := s.owned(ctx, ownerID, photoID)
	if err != nil {
		return nil, err
	}

	if err := s.photos.SetCaption(ctx, photoID, caption); err != nil {
		return nil, err
	}
	photo.Caption = caption
	view := photo.View()
	return &view, nil
}

// Delete removes the photo if ownerID owns it; otherwise it does nothing.
func (s *PhotoService) Delete(ctx context.Context, ownerID, photoID string) error {
	deleted, err := s.photos.DeleteOwned(ctx, photoID, ownerID)
	if err != nil {
		return err
	}
	if deleted {
		s.logger.InfoContext(ctx, "photo deleted", "photo_id", photoID, "user_id", ownerID)
	}
	return nil
}

func (s *PhotoService) owned(ctx context.Context, ownerID, photoID string) (*models.Photo, error) {
	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if err := helpers.CheckOwner(photo.UserID, ownerID); err != nil {
		return nil, err
	}
	return photo, nil
}
