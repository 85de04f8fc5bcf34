package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spycce/SmartTrip/models"
)

func TestLandingCapsAndOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for day := 1; day <= 8; day++ {
		day := day
		f.createTrip(t, userA, func(p *models.TripPayload) {
			p.StartDate = models.NewDate(2024, time.April, day)
			p.EndDate = p.StartDate
			p.IsShared = true
		})
	}
	f.createTrip(t, userA, func(p *models.TripPayload) {
		p.StartDate = models.NewDate(2025, time.January, 1)
		p.EndDate = p.StartDate
	})

	for i := 0; i < 12; i++ {
		f.clock.Advance(time.Minute)
		if _, err := f.photos.Upload(ctx, UploadInput{OwnerID: userA, TripID: "t", Image: pngHeader, IsShared: i%4 != 0, Caption: string(rune('a' + i))}); err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
	}

	feed, err := f.feed.Landing(ctx)
	if err != nil {
		t.Fatalf("Landing() error = %v", err)
	}
	if len(feed.Trips) != 6 {
		t.Fatalf("trips = %d, want 6", len(feed.Trips))
	}
	if got := feed.Trips[0].StartDate.String(); got != "2024-04-08" {
		t.Fatalf("first trip starts %s", got)
	}
	for _, trip := range feed.Trips {
		if !trip.IsShared {
			t.Fatalf("private trip in feed: %+v", trip)
		}
	}

	if len(feed.Photos) != 9 {
		t.Fatalf("photos = %d, want 9 shared", len(feed.Photos))
	}
	if feed.Photos[0].Caption != "l" {
		t.Fatalf("newest photo first, got %q", feed.Photos[0].Caption)
	}
	for i := 1; i < len(feed.Photos); i++ {
		if feed.Photos[i].CreatedAt.After(feed.Photos[i-1].CreatedAt) {
			t.Fatalf("photos out of order at %d", i)
		}
	}
}

func TestLandingEmpty(t *testing.T) {
	f := newFixture(t)
	feed, err := f.feed.Landing(context.Background())
	if err != nil {
		t.Fatalf("Landing() error = %v", err)
	}
	if feed.Trips == nil || feed.Photos == nil || len(feed.Trips)+len(feed.Photos) != 0 {
		t.Fatalf("Landing() = %+v", feed)
	}
}

func TestAlbums(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	march := f.createTrip(t, userA, nil)
	may := f.createTrip(t, userA, func(p *models.TripPayload) {
		p.From, p.To = "Delhi", "Manali"
		p.StartDate = models.NewDate(2024, time.May, 10)
		p.EndDate = models.NewDate(2024, time.May, 12)
	})
	f.createTrip(t, userB, nil)

	upload := func(tripID, caption string) {
		f.clock.Advance(time.Minute)
		image := append(append([]byte{}, pngHeader...), caption...)
		if _, err := f.photos.Upload(ctx, UploadInput{OwnerID: userA, TripID: tripID, Image: image, ContentType: "image/png", Caption: caption}); err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
	}
	upload(march.ID.Hex(), "first")
	upload(march.ID.Hex(), "second")
	upload("64b7f0c2a1b2c3d4e5f6dead", "orphan")

	albums, err := f.feed.Albums(ctx, userA)
	if err != nil {
		t.Fatalf("Albums() error = %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("albums = %d, want 2", len(albums))
	}

	if albums[0].TripID != may.ID.Hex() || albums[0].Title != "Delhi to Manali" {
		t.Fatalf("first album = %+v", albums[0])
	}
	if albums[0].PhotoCount != 0 || albums[0].CoverImage != nil {
		t.Fatalf("empty album = %+v", albums[0])
	}

	second := albums[1]
	if second.Title != "Pune to Goa" || second.PhotoCount != 2 || second.CoverImage == nil {
		t.Fatalf("second album = %+v", second)
	}
	newest := models.DataURI("image/png", append(append([]byte{}, pngHeader...), "second"...))
	if *second.CoverImage != newest {
		t.Fatalf("cover = %q, want newest upload", *second.CoverImage)
	}
	if !strings.HasPrefix(*second.CoverImage, "data:image/png;base64,") {
		t.Fatalf("cover = %q", *second.CoverImage)
	}
}
