package models

import (
	"encoding/base64"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxPhotoBytes bounds a single uploaded image.
const MaxPhotoBytes = 5 << 20

type Photo struct {
	ID          primitive.ObjectID `bson:"_id"`
	UserID      string             `bson:"userId"`
	TripID      string             `bson:"tripId"`
	Image       []byte             `bson:"image"`
	ContentType string             `bson:"contentType"`
	IsShared    bool               `bson:"isShared"`
	Caption     string             `bson:"caption"`
	Created_At  time.Time          `bson:"createdAt"`
}

// PhotoView is a Photo as clients see it, with the payload inlined as a data URI.
type PhotoView struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	TripID      string    `json:"tripId"`
	Image       string    `json:"image"`
	ContentType string    `json:"contentType"`
	IsShared    bool      `json:"isShared"`
	Caption     string    `json:"caption"`
	CreatedAt   time.Time `json:"createdAt"`
}

func DataURI(contentType string, payload []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

func (p *Photo) View() PhotoView {
	return PhotoView{
		ID:          p.ID.Hex(),
		UserID:      p.UserID,
		TripID:      p.TripID,
		Image:       DataURI(p.ContentType, p.Image),
		ContentType: p.ContentType,
		IsShared:    p.IsShared,
		Caption:     p.Caption,
		CreatedAt:   p.Created_At,
	}
}

func PhotoViews(photos []Photo) []PhotoView {
	views := make([]PhotoView, 0, len(photos))
	for i := range photos {
		views = append(views, photos[i].View())
	}
	return views
}

// Album summarises one trip for the gallery view.
type Album struct {
	TripID     string  `json:"tripId"`
	Title      string  `json:"title"`
	StartDate  Date    `json:"startDate"`
	PhotoCount int64   `json:"photoCount"`
	CoverImage *string `json:"coverImage"`
}

type LandingFeed struct {
	Trips  []Trip      `json:"trips"`
	Photos []PhotoView `json:"photos"`
}
