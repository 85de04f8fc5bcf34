package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TravelMode string

const (
	ModeCar    TravelMode = "Car"
	ModeTrain  TravelMode = "Train"
	ModeBus    TravelMode = "Bus"
	ModeFlight TravelMode = "Flight"
)

type Expense struct {
	Category string  `bson:"category" json:"category" validate:"required"`
	Amount   float64 `bson:"amount" json:"amount" validate:"gte=0"`
}

type Link struct {
	Label string `bson:"label" json:"label"`
	URL   string `bson:"url" json:"url"`
}

type Section struct {
	Title string   `bson:"title" json:"title"`
	Items []string `bson:"items" json:"items"`
	Links []Link   `bson:"links,omitempty" json:"links,omitempty"`
}

type DayPlan struct {
	Day           int       `bson:"day" json:"day"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	Distance      string    `bson:"distance,omitempty" json:"distance,omitempty"`
	TravelTime    string    `bson:"travelTime,omitempty" json:"travelTime,omitempty"`
	Route         string    `bson:"route,omitempty" json:"route,omitempty"`
	Activities    []string  `bson:"activities" json:"activities"`
	Sections      []Section `bson:"sections,omitempty" json:"sections,omitempty"`
	Images        []string  `bson:"images,omitempty" json:"images,omitempty"`
	ImageKeywords []string  `bson:"image_keywords,omitempty" json:"image_keywords,omitempty"`
}

type LatLng struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Coordinates struct {
	Start LatLng `bson:"start" json:"start"`
	End   LatLng `bson:"end" json:"end"`
}

type Place struct {
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address" json:"address"`
}

// TransportHubs lists the nearest hubs at the destination.
type TransportHubs struct {
	Airport        *Place `bson:"airport,omitempty" json:"airport,omitempty"`
	BusStand       *Place `bson:"busStand,omitempty" json:"busStand,omitempty"`
	TaxiStand      *Place `bson:"taxiStand,omitempty" json:"taxiStand,omitempty"`
	RailwayStation *Place `bson:"railwayStation,omitempty" json:"railwayStation,omitempty"`
}

type Review struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	UserID   string             `bson:"userId" json:"userId"`
	UserName string             `bson:"userName" json:"userName"`
	Rating   int                `bson:"rating" json:"rating"`
	Comment  string             `bson:"comment" json:"comment"`
	Date     time.Time          `bson:"date" json:"date"`
}

type Trip struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	UserID        string             `bson:"userId" json:"userId"`
	From          string             `bson:"from" json:"from"`
	To            string             `bson:"to" json:"to"`
	StartDate     Date               `bson:"startDate" json:"startDate"`
	EndDate       Date               `bson:"endDate" json:"endDate"`
	Mode          TravelMode         `bson:"mode" json:"mode"`
	TotalDays     int                `bson:"totalDays" json:"totalDays"`
	Summary       string             `bson:"summary" json:"summary"`
	TotalCost     float64            `bson:"totalCost" json:"totalCost"`
	Expenses      []Expense          `bson:"expenses" json:"expenses"`
	Itinerary     []DayPlan          `bson:"itinerary" json:"itinerary"`
	Coordinates   *Coordinates       `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	TransportHubs *TransportHubs     `bson:"transportHubs,omitempty" json:"transportHubs,omitempty"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	IsShared      bool               `bson:"isShared" json:"isShared"`
	Created_At    time.Time          `bson:"createdAt" json:"createdAt"`
}

// TripPayload is what a client submits when saving a generated plan.
// totalCost and totalDays are taken as given.
type TripPayload struct {
	From          string         `json:"from" validate:"required"`
	To            string         `json:"to" validate:"required"`
	StartDate     Date           `json:"startDate"`
	EndDate       Date           `json:"endDate"`
	Mode          TravelMode     `json:"mode" validate:"required,oneof=Car Train Bus Flight"`
	TotalDays     int            `json:"totalDays" validate:"gte=0"`
	Summary       string         `json:"summary"`
	TotalCost     float64        `json:"totalCost" validate:"gte=0"`
	Expenses      []Expense      `json:"expenses" validate:"dive"`
	Itinerary     []DayPlan      `json:"itinerary"`
	Coordinates   *Coordinates   `json:"coordinates"`
	TransportHubs *TransportHubs `json:"transportHubs"`
	IsShared      bool           `json:"isShared"`
}

type ReviewRequest struct {
	UserName string `json:"userName"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

type ShareStatus struct {
	IsShared bool `json:"isShared"`
}
