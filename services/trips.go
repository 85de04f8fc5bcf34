package services

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spycce/SmartTrip/database"
	"github.com/spycce/SmartTrip/helpers"
	"github.com/spycce/SmartTrip/models"
)

// TripService owns trip records and their embedded reviews. Review mutations are a
// read-modify-write of one trip document; concurrent writers race and the last one wins.
type TripService struct {
	trips  database.TripRepository
	clock  helpers.Clock
	logger *slog.Logger
}

func NewTripService(trips database.TripRepository, clock helpers.Clock, logger *slog.Logger) *TripService {
	return &TripService{trips: trips, clock: clock, logger: logger.With("component", "trips")}
}

func (s *TripService) List(ctx context.Context, ownerID string) ([]models.Trip, error) {
	trips, err := s.trips.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		normalizeTrip(&trips[i])
	}
	return trips, nil
}

// Create stores payload as sent. totalCost and totalDays are not recomputed.
func (s *TripService) Create(ctx context.Context, ownerID string, payload models.TripPayload) (*models.Trip, error) {
	if payload.StartDate.IsZero() || payload.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", models.ErrBadRequest)
	}
	if payload.EndDate.Before(payload.StartDate.Time) {
		return nil, fmt.Errorf("%w: endDate is before startDate", models.ErrBadRequest)
	}

	trip := &models.Trip{
		ID:            primitive.NewObjectID(),
		UserID:        ownerID,
		From:          payload.From,
		To:            payload.To,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
		Mode:          payload.Mode,
		TotalDays:     payload.TotalDays,
		Summary:       payload.Summary,
		TotalCost:     payload.TotalCost,
		Expenses:      payload.Expenses,
		Itinerary:     payload.Itinerary,
		Coordinates:   payload.Coordinates,
		TransportHubs: payload.TransportHubs,
		Reviews:       []models.Review{},
		IsShared:      payload.IsShared,
		Created_At:    s.clock.Now().UTC(),
	}
	normalizeTrip(trip)

	if err := s.trips.Insert(ctx, trip); err != nil {
		return nil, err
	}
	if sum := helpers.SumExpenses(trip.Expenses); sum != trip.TotalCost {
		s.logger.WarnContext(ctx, "trip saved with totalCost not matching expenses",
			"trip_id", trip.ID.Hex(), "total_cost", trip.TotalCost, "expenses_sum", sum)
	}
	s.logger.InfoContext(ctx, "trip created", "trip_id", trip.ID.Hex(), "user_id", ownerID)
	return trip, nil
}

// Get returns one of the owner's trips.
func (s *TripService) Get(ctx context.Context, ownerID, tripID string) (*models.Trip, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := helpers.CheckOwner(trip.UserID, ownerID); err != nil {
		return nil, err
	}
	normalizeTrip(trip)
	return trip, nil
}

// Delete removes the trip if ownerID owns it; otherwise it does nothing.
// Photos of the trip are left in place.
func (s *TripService) Delete(ctx context.Context, ownerID, tripID string) error {
	deleted, err := s.trips.DeleteOwned(ctx, tripID, ownerID)
	if err != nil {
		return err
	}
	if deleted {
		s.logger.InfoContext(ctx, "trip deleted", "trip_id", tripID, "user_id", ownerID)
	}
	return nil
}

// AddReview lets any authenticated user review any trip. The review goes first.
func (s *TripService) AddReview(ctx context.Context, tripID, authorID, authorName string, rating int, comment string) ([]models.Review, error) {
	if err := checkRating(rating); err != nil {
		return nil, err
	}

	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		ID:       primitive.NewObjectID(),
		UserID:   authorID,
		UserName: authorName,
		Rating:   rating,
		Comment:  comment,
		Date:     s.clock.Now().UTC(),
	}
	reviews := append([]models.Review{review}, trip.Reviews...)

	if err := s.trips.SetReviews(ctx, tripID, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *TripService) EditReview(ctx context.Context, tripID, reviewID, editorID string, rating int, comment string) ([]models.Review, error) {
	if err := checkRating(rating); err != nil {
		return nil, err
	}

	trip, i, err := s.findReview(ctx, tripID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := helpers.CheckAuthor(&trip.Reviews[i], editorID); err != nil {
		return nil, err
	}

	reviews := append([]models.Review{}, trip.Reviews...)
	reviews[i].Rating = rating
	reviews[i].Comment = comment

	if err := s.trips.SetReviews(ctx, tripID, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *TripService) DeleteReview(ctx context.Context, tripID, reviewID, requesterID string) ([]models.Review, error) {
	trip, i, err := s.findReview(ctx, tripID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := helpers.CheckAuthor(&trip.Reviews[i], requesterID); err != nil {
		return nil, err
	}

	reviews := make([]models.Review, 0, len(trip.Reviews)-1)
	reviews = append(reviews, trip.Reviews[:i]...)
	reviews = append(reviews, trip.Reviews[i+1:]...)

	if err := s.trips.SetReviews(ctx, tripID, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *TripService) findReview(ctx context.Context, tripID, reviewID string) (*models.Trip, int, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, -1, err
	}
	for i := range trip.Reviews {
		if trip.Reviews[i].ID.Hex() == reviewID {
			return trip, i, nil
		}
	}
	return nil, -1, fmt.Errorf("review: %w", models.ErrNotFound)
}

// ToggleShare flips the owner's trip between private and public and returns the new flag.
func (s *TripService) ToggleShare(ctx context.Context, ownerID, tripID string) (bool, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return false, err
	}
	if err := helpers.CheckOwner(trip.UserID, ownerID); err != nil {
		return false, err
	}

	shared := !trip.IsShared
	if err := s.trips.SetShared(ctx, tripID, shared); err != nil {
		return false, err
	}
	s.logger.InfoContext(ctx, "trip sharing changed", "trip_id", tripID, "is_shared", shared)
	return shared, nil
}

// GetPublicByID returns a shared trip. A private trip looks exactly like a missing one.
func (s *TripService) GetPublicByID(ctx context.Context, tripID string) (*models.Trip, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsShared {
		return nil, models.ErrNotFound
	}
	normalizeTrip(trip)
	return trip, nil
}

func checkRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", models.ErrBadRequest)
	}
	return nil
}

// normalizeTrip replaces nil slices so clients always get arrays.
func normalizeTrip(t *models.Trip) {
	if t.Reviews == nil {
		t.Reviews = []models.Review{}
	}
	if t.Expenses == nil {
		t.Expenses = []models.Expense{}
	}
	if t.Itinerary == nil {
		t.Itinerary = []models.DayPlan{}
	}
}
