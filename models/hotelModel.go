package models

// Hotel is one normalized search result.
type Hotel struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	PrimaryInfo  *string  `json:"primaryInfo"`
	Rating       float64  `json:"rating"`
	Reviews      string   `json:"reviews"`
	Price        int      `json:"price"` // 0 means "view deal"
	PriceDisplay *string  `json:"priceDisplay"`
	Image        string   `json:"image"`
	Amenities    []string `json:"amenities"`
	IsSponsored  bool     `json:"isSponsored"`
	Provider     string   `json:"provider"`
	Link         string   `json:"link"`
}

type AmenityGroup struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type HotelReview struct {
	Title  string  `json:"title"`
	Text   string  `json:"text"`
	User   string  `json:"user"`
	Rating float64 `json:"rating"`
	Date   string  `json:"date"`
}

// HotelDetails is the flat detail view of one property.
type HotelDetails struct {
	Title       string         `json:"title"`
	Rating      float64        `json:"rating"`
	RatingCount int            `json:"ratingCount"`
	Ranking     string         `json:"ranking"`
	Price       string         `json:"price"`
	Photos      []string       `json:"photos"`
	About       string         `json:"about"`
	Amenities   []AmenityGroup `json:"amenities"`
	Address     string         `json:"address"`
	Reviews     []HotelReview  `json:"reviews"`
	Location    *HotelLocation `json:"location"`
}

type HotelLocation struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

type GeoLocation struct {
	GeoID string `json:"geoId"`
	Name  string `json:"name"`
}

// PlaceSuggestion is one geocoding autocomplete entry.
type PlaceSuggestion struct {
	DisplayName string  `json:"displayName"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}
