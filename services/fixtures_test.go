package services

import (
	"context"
	"testing"
	"time"

	"github.com/spycce/SmartTrip/database"
	"github.com/spycce/SmartTrip/helpers"
	"github.com/spycce/SmartTrip/models"
)

var epoch = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	clock  *helpers.StubClock
	repos  *database.Repositories
	trips  *TripService
	photos *PhotoService
	feed   *FeedService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := helpers.NewStubClock(epoch)
	repos := &database.Repositories{
		Users:  database.NewMemoryUserRepository(),
		Trips:  database.NewMemoryTripRepository(),
		Photos: database.NewMemoryPhotoRepository(),
	}
	return &fixture{
		clock:  clock,
		repos:  repos,
		trips:  NewTripService(repos.Trips, clock, helpers.NopLogger()),
		photos: NewPhotoService(repos.Photos, clock, helpers.NopLogger()),
		feed:   NewFeedService(repos.Trips, repos.Photos),
	}
}

func puneToGoa() models.TripPayload {
	return models.TripPayload{
		From:      "Pune",
		To:        "Goa",
		StartDate: models.NewDate(2024, time.March, 1),
		EndDate:   models.NewDate(2024, time.March, 3),
		Mode:      models.ModeCar,
		TotalDays: 3,
		Summary:   "Coastal drive",
		TotalCost: 5000,
		Expenses: []models.Expense{
			{Category: "Food", Amount: 1500},
			{Category: "Stay", Amount: 3500},
		},
		Itinerary: []models.DayPlan{{Day: 1, Title: "Pune -> Goa", Activities: []string{"Drive"}}},
	}
}

func (f *fixture) createTrip(t *testing.T, ownerID string, mutate func(*models.TripPayload)) *models.Trip {
	t.Helper()
	payload := puneToGoa()
	if mutate != nil {
		mutate(&payload)
	}
	trip, err := f.trips.Create(context.Background(), ownerID, payload)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return trip
}
