package database

import (
	"context"
	"sort"
	"sync"

	"github.com/spycce/SmartTrip/models"
)

// The memory repositories keep documents in process. They back the "memory"
// store and the tests, and mirror the Mongo repositories' semantics: copies in,
// copies out, insertion order as the natural order.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

func (r *MemoryUserRepository) Insert(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return models.ErrDuplicateEmail
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *MemoryUserRepository) CountByEmail(_ context.Context, email string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, u := range r.users {
		if u.Email == email {
			n++
		}
	}
	return n, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID.Hex() == id {
			found := u
			return &found, nil
		}
	}
	return nil, models.ErrNotFound
}

type MemoryTripRepository struct {
	mu    sync.RWMutex
	trips []models.Trip
}

func NewMemoryTripRepository() *MemoryTripRepository {
	return &MemoryTripRepository{}
}

func copyTrip(t models.Trip) models.Trip {
	if t.Reviews != nil {
		t.Reviews = append([]models.Review{}, t.Reviews...)
	}
	return t
}

func (r *MemoryTripRepository) Insert(_ context.Context, trip *models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips = append(r.trips, copyTrip(*trip))
	return nil
}

func (r *MemoryTripRepository) indexOf(id string) int {
	for i := range r.trips {
		if r.trips[i].ID.Hex() == id {
			return i
		}
	}
	return -1
}

func (r *MemoryTripRepository) FindByID(_ context.Context, id string) (*models.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, models.ErrNotFound
	}
	found := copyTrip(r.trips[i])
	return &found, nil
}

func (r *MemoryTripRepository) FindByOwner(_ context.Context, ownerID string) ([]models.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	trips := []models.Trip{}
	for _, t := range r.trips {
		if t.UserID == ownerID {
			trips = append(trips, copyTrip(t))
		}
	}
	return trips, nil
}

func (r *MemoryTripRepository) FindShared(_ context.Context, limit int64) ([]models.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	trips := []models.Trip{}
	for _, t := range r.trips {
		if t.IsShared {
			trips = append(trips, copyTrip(t))
		}
	}
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].StartDate.After(trips[j].StartDate.Time)
	})
	if limit > 0 && int64(len(trips)) > limit {
		trips = trips[:limit]
	}
	return trips, nil
}

func (r *MemoryTripRepository) DeleteOwned(_ context.Context, id, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 || r.trips[i].UserID != ownerID {
		return false, nil
	}
	r.trips = append(r.trips[:i], r.trips[i+1:]...)
	return true, nil
}

func (r *MemoryTripRepository) SetReviews(_ context.Context, id string, reviews []models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.ErrNotFound
	}
	r.trips[i].Reviews = append([]models.Review{}, reviews...)
	return nil
}

func (r *MemoryTripRepository) SetShared(_ context.Context, id string, shared bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.ErrNotFound
	}
	r.trips[i].IsShared = shared
	return nil
}

type MemoryPhotoRepository struct {
	mu     sync.RWMutex
	photos []models.Photo
}

func NewMemoryPhotoRepository() *MemoryPhotoRepository {
	return &MemoryPhotoRepository{}
}

func (r *MemoryPhotoRepository) Insert(_ context.Context, photo *models.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.photos = append(r.photos, *photo)
	return nil
}

func (r *MemoryPhotoRepository) indexOf(id string) int {
	for i := range r.photos {
		if r.photos[i].ID.Hex() == id {
			return i
		}
	}
	return -1
}

func (r *MemoryPhotoRepository) FindByID(_ context.Context, id string) (*models.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, models.ErrNotFound
	}
	found := r.photos[i]
	return &found, nil
}

func (r *MemoryPhotoRepository) FindByTrip(_ context.Context, tripID string) ([]models.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	photos := []models.Photo{}
	for _, p := range r.photos {
		if p.TripID == tripID {
			photos = append(photos, p)
		}
	}
	return photos, nil
}

// newestFirst orders by creation time, breaking ties by later insertion.
func newestFirst(photos []models.Photo) {
	for i, j := 0, len(photos)-1; i < j; i, j = i+1, j-1 {
		photos[i], photos[j] = photos[j], photos[i]
	}
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].Created_At.After(photos[j].Created_At)
	})
}

func (r *MemoryPhotoRepository) FindShared(_ context.Context, limit int64) ([]models.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	photos := []models.Photo{}
	for _, p := range r.photos {
		if p.IsShared {
			photos = append(photos, p)
		}
	}
	newestFirst(photos)
	if limit > 0 && int64(len(photos)) > limit {
		photos = photos[:limit]
	}
	return photos, nil
}

func (r *MemoryPhotoRepository) CountByTrip(ctx context.Context, tripID string) (int64, error) {
	photos, err := r.FindByTrip(ctx, tripID)
	if err != nil {
		return 0, err
	}
	return int64(len(photos)), nil
}

func (r *MemoryPhotoRepository) LatestByTrip(ctx context.Context, tripID string) (*models.Photo, error) {
	photos, err := r.FindByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, models.ErrNotFound
	}
	newestFirst(photos)
	return &photos[0], nil
}

func (r *MemoryPhotoRepository) SetShared(_ context.Context, id string, shared bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.ErrNotFound
	}
	r.photos[i].IsShared = shared
	return nil
}

func (r *MemoryPhotoRepository) SetCaption(_ context.Context, id, caption string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.ErrNotFound
	}
	r.photos[i].Caption = caption
	return nil
}

func (r *MemoryPhotoRepository) DeleteOwned(_ context.Context, id, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 || r.photos[i].UserID != ownerID {
		return false, nil
	}
	r.photos = append(r.photos[:i], r.photos[i+1:]...)
	return true, nil
}
