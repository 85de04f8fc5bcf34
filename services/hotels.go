package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/spycce/SmartTrip/helpers"
	"github.com/spycce/SmartTrip/models"
)

const (
	placeholderHotelImage = "https://images.unsplash.com/photo-1566073771259-6a8506099945?fit=crop&w=800&q=80"
	tripAdvisorSite       = "https://www.tripadvisor.com"
	hotelCurrency         = "INR"
)

// TripAdvisorClient talks to the TripAdvisor RapidAPI proxy.
type TripAdvisorClient struct {
	BaseURL    string
	Host       string
	APIKey     string
	HTTPClient *http.Client
}

func NewTripAdvisorClient(cfg *helpers.Config) *TripAdvisorClient {
	return &TripAdvisorClient{
		BaseURL:    "https://" + cfg.RapidAPIHost,
		Host:       cfg.RapidAPIHost,
		APIKey:     cfg.RapidAPIKey,
		HTTPClient: &http.Client{},
	}
}

func (c *TripAdvisorClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: RAPIDAPI_KEY is missing", models.ErrNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-rapidapi-key", c.APIKey)
	req.Header.Set("x-rapidapi-host", c.Host)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: tripadvisor: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: tripadvisor: %v", models.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: tripadvisor status %d: %s", models.ErrUpstream, resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: tripadvisor: %v", models.ErrParse, err)
	}
	return nil
}

// flexString accepts a JSON string or number; the provider is not consistent about ids and counts.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

// Raw provider shapes. Everything is optional; see toHotel and toHotelDetails.

type rawLocationSearch struct {
	Data []json.RawMessage `json:"data"`
}

type rawLocation struct {
	GeoID flexString `json:"geoId"`
	Title string     `json:"title"`
	Name  string     `json:"name"`
}

type rawHotelSearch struct {
	Data struct {
		Data []json.RawMessage `json:"data"`
	} `json:"data"`
}

type rawHotel struct {
	ID            flexString `json:"id"`
	Title         string     `json:"title"`
	Name          string     `json:"name"`
	PrimaryInfo   *string    `json:"primaryInfo"`
	SecondaryInfo string     `json:"secondaryInfo"`
	BubbleRating  struct {
		Rating float64    `json:"rating"`
		Count  flexString `json:"count"`
	} `json:"bubbleRating"`
	IsSponsored     bool    `json:"isSponsored"`
	PriceForDisplay *string `json:"priceForDisplay"`
	Provider        string  `json:"provider"`
	CardPhotos      []struct {
		Sizes struct {
			URLTemplate string `json:"urlTemplate"`
		} `json:"sizes"`
	} `json:"cardPhotos"`
	CardLink struct {
		Route struct {
			URL string `json:"url"`
		} `json:"route"`
	} `json:"cardLink"`
}

type rawHotelDetailsEnvelope struct {
	Data *rawHotelDetails `json:"data"`
}

type rawHotelDetails struct {
	Title           string          `json:"title"`
	Rating          json.RawMessage `json:"rating"`
	NumberReviews   json.RawMessage `json:"numberReviews"`
	RankingDetails  string          `json:"rankingDetails"`
	Price           json.RawMessage `json:"price"`
	Photos          json.RawMessage `json:"photos"`
	About           json.RawMessage `json:"about"`
	AmenitiesScreen json.RawMessage `json:"amenitiesScreen"`
	Location        json.RawMessage `json:"location"`
	Reviews         json.RawMessage `json:"reviews"`
}

// lenient decodes raw into v and reports whether it worked. A field that does not match
// the expected shape is treated as absent.
func lenient(raw json.RawMessage, v any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

var (
	markup    = regexp.MustCompile(`<[^>]*>?`)
	nonDigits = regexp.MustCompile(`[^0-9]`)
	lineBreak = regexp.MustCompile(`<br\s*/?>`)
)

func StripMarkup(s string) string {
	return markup.ReplaceAllString(s, "")
}

// NormalizePrice keeps the digits of a display price such as "₹12,345" or "INR 12345".
// Anything unparseable becomes 0, which clients render as "view deal".
func NormalizePrice(display string) int {
	digits := nonDigits.ReplaceAllString(display, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// FillImageTemplate substitutes the provider's {width}/{height}/{mode} placeholders.
func FillImageTemplate(template string, width, height int) string {
	r := strings.NewReplacer(
		"{width}", strconv.Itoa(width),
		"{height}", strconv.Itoa(height),
		"{mode}", "1",
	)
	return r.Replace(template)
}

func toHotel(item rawHotel, index int, fallbackLocation string) models.Hotel {
	hotel := models.Hotel{
		ID:           string(item.ID),
		Name:         StripMarkup(item.Title),
		PrimaryInfo:  item.PrimaryInfo,
		Rating:       item.BubbleRating.Rating,
		Reviews:      string(item.BubbleRating.Count),
		PriceDisplay: item.PriceForDisplay,
		Image:        placeholderHotelImage,
		Amenities:    []string{},
		IsSponsored:  item.IsSponsored,
		Provider:     item.Provider,
		Link:         "#",
	}
	if hotel.ID == "" {
		hotel.ID = fmt.Sprintf("ta_%d", index)
	}
	if hotel.Name == "" {
		hotel.Name = item.Name
	}
	if hotel.Reviews == "" {
		hotel.Reviews = "0"
	}
	if hotel.Provider == "" {
		hotel.Provider = "TripAdvisor"
	}
	if item.PriceForDisplay != nil {
		hotel.Price = NormalizePrice(*item.PriceForDisplay)
	}
	if len(item.CardPhotos) > 0 && item.CardPhotos[0].Sizes.URLTemplate != "" {
		hotel.Image = FillImageTemplate(item.CardPhotos[0].Sizes.URLTemplate, 500, 300)
	}

	location := item.SecondaryInfo
	if location == "" {
		location = fallbackLocation
	}
	hotel.Location = StripMarkup(location)

	if route := item.CardLink.Route.URL; route != "" {
		hotel.Link = tripAdvisorSite + route
	}
	return hotel
}

// HotelService resolves free-text places to provider geo ids and normalizes hotel data.
type HotelService struct {
	client *TripAdvisorClient
	clock  helpers.Clock
	logger *slog.Logger
}

func NewHotelService(client *TripAdvisorClient, clock helpers.Clock, logger *slog.Logger) *HotelService {
	return &HotelService{client: client, clock: clock, logger: logger.With("component", "hotels")}
}

// defaultStay fills missing dates with tomorrow and the day after in the local calendar.
func (s *HotelService) defaultStay(checkIn, checkOut string) (string, string) {
	if checkIn != "" && checkOut != "" {
		return checkIn, checkOut
	}
	tomorrow := s.clock.Now().AddDate(0, 0, 1)
	return tomorrow.Format(models.DateLayout), tomorrow.AddDate(0, 0, 1).Format(models.DateLayout)
}

// ResolveLocation returns the first provider match for city, or nil when there is none.
func (s *HotelService) ResolveLocation(ctx context.Context, city string) (*models.GeoLocation, error) {
	var res rawLocationSearch
	if err := s.client.get(ctx, "/api/v1/hotels/searchLocation", url.Values{"query": {city}}, &res); err != nil {
		return nil, err
	}
	if len(res.Data) == 0 {
		return nil, nil
	}

	var first rawLocation
	lenient(res.Data[0], &first)
	if first.GeoID == "" {
		return nil, nil
	}

	name := StripMarkup(first.Title)
	if name == "" {
		name = first.Name
	}
	if name == "" {
		name = city
	}
	return &models.GeoLocation{GeoID: string(first.GeoID), Name: name}, nil
}

func (s *HotelService) SearchByGeoID(ctx context.Context, geo models.GeoLocation, checkIn, checkOut string) ([]models.Hotel, error) {
	checkIn, checkOut = s.defaultStay(checkIn, checkOut)
	params := url.Values{
		"geoId":        {geo.GeoID},
		"checkIn":      {checkIn},
		"checkOut":     {checkOut},
		"pageNumber":   {"1"},
		"currencyCode": {hotelCurrency},
	}

	var res rawHotelSearch
	if err := s.client.get(ctx, "/api/v1/hotels/searchHotels", params, &res); err != nil {
		return nil, err
	}

	hotels := make([]models.Hotel, 0, len(res.Data.Data))
	for i, raw := range res.Data.Data {
		var item rawHotel
		lenient(raw, &item)
		hotels = append(hotels, toHotel(item, i, geo.Name))
	}
	return hotels, nil
}

// Search never fails: a provider problem, missing key included, yields an empty list.
func (s *HotelService) Search(ctx context.Context, city, checkIn, checkOut string) []models.Hotel {
	log := s.logger.With("city", city)

	geo, err := s.ResolveLocation(ctx, city)
	if err != nil {
		log.ErrorContext(ctx, "hotel location lookup failed", "error", err)
		return []models.Hotel{}
	}
	if geo == nil {
		log.InfoContext(ctx, "hotel location not found")
		return []models.Hotel{}
	}

	hotels, err := s.SearchByGeoID(ctx, *geo, checkIn, checkOut)
	if err != nil {
		log.ErrorContext(ctx, "hotel search failed", "geo_id", geo.GeoID, "error", err)
		return []models.Hotel{}
	}
	log.InfoContext(ctx, "hotel search done", "geo_id", geo.GeoID, "results", len(hotels))
	return hotels
}

type DetailsQuery struct {
	HotelID  string
	CheckIn  string
	CheckOut string
	Adults   string
	Rooms    string
}

// Details fetches one property. Unlike Search, failures are returned to the caller.
func (s *HotelService) Details(ctx context.Context, q DetailsQuery) (*models.HotelDetails, error) {
	checkIn, checkOut := s.defaultStay(q.CheckIn, q.CheckOut)
	adults, rooms := q.Adults, q.Rooms
	if adults == "" {
		adults = "2"
	}
	if rooms == "" {
		rooms = "1"
	}
	params := url.Values{
		"id":           {q.HotelID},
		"checkIn":      {checkIn},
		"checkOut":     {checkOut},
		"adults":       {adults},
		"rooms":        {rooms},
		"currencyCode": {hotelCurrency},
	}

	var res rawHotelDetailsEnvelope
	if err := s.client.get(ctx, "/api/v1/hotels/getHotelDetails", params, &res); err != nil {
		s.logger.ErrorContext(ctx, "hotel details failed", "hotel_id", q.HotelID, "error", err)
		return nil, err
	}
	if res.Data == nil {
		return nil, fmt.Errorf("hotel %s: %w", q.HotelID, models.ErrNotFound)
	}
	return toHotelDetails(res.Data), nil
}

func toHotelDetails(data *rawHotelDetails) *models.HotelDetails {
	details := &models.HotelDetails{
		Title:     data.Title,
		Ranking:   StripMarkup(data.RankingDetails),
		Price:     "Check dates",
		Photos:    []string{},
		Amenities: []models.AmenityGroup{},
		Reviews:   []models.HotelReview{},
	}
	lenient(data.Rating, &details.Rating)
	lenient(data.NumberReviews, &details.RatingCount)

	var price struct {
		DisplayPrice string `json:"displayPrice"`
	}
	if lenient(data.Price, &price) && price.DisplayPrice != "" {
		details.Price = price.DisplayPrice
	}

	var photos []struct {
		URLTemplate string `json:"urlTemplate"`
	}
	lenient(data.Photos, &photos)
	for _, p := range photos {
		if p.URLTemplate != "" {
			details.Photos = append(details.Photos, FillImageTemplate(p.URLTemplate, 800, 500))
		}
	}

	var about struct {
		Title   string `json:"title"`
		Content []struct {
			Content []struct {
				Content string `json:"content"`
			} `json:"content"`
		} `json:"content"`
	}
	if lenient(data.About, &about) {
		details.About = about.Title
		if len(about.Content) > 0 && len(about.Content[0].Content) > 0 && about.Content[0].Content[0].Content != "" {
			details.About = about.Content[0].Content[0].Content
		}
	}

	var amenities []struct {
		Title   string   `json:"title"`
		Content []string `json:"content"`
	}
	lenient(data.AmenitiesScreen, &amenities)
	for _, grp := range amenities {
		items := grp.Content
		if items == nil {
			items = []string{}
		}
		details.Amenities = append(details.Amenities, models.AmenityGroup{Title: grp.Title, Items: items})
	}

	// a partial decode still yields the fields that matched
	var location models.HotelLocation
	lenient(data.Location, &location)
	if location != (models.HotelLocation{}) {
		details.Address = location.Address
		details.Location = &location
	}

	var reviews struct {
		Content []struct {
			Title       string  `json:"title"`
			Text        string  `json:"text"`
			Rating      float64 `json:"rating"`
			Published   string  `json:"publishedDate"`
			UserProfile struct {
				DisplayName string `json:"displayName"`
			} `json:"userProfile"`
		} `json:"content"`
	}
	lenient(data.Reviews, &reviews)
	for _, r := range reviews.Content {
		details.Reviews = append(details.Reviews, models.HotelReview{
			Title:  r.Title,
			Text:   lineBreak.ReplaceAllString(r.Text, "\n"),
			User:   r.UserProfile.DisplayName,
			Rating: r.Rating,
			Date:   r.Published,
		})
	}
	return details
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
