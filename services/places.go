package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spycce/SmartTrip/helpers"
	"github.com/spycce/SmartTrip/models"
)

const (
	minAutocompleteQuery = 3
	autocompleteLimit    = 5
)

// PlaceService proxies place autocomplete to a Nominatim instance.
type PlaceService struct {
	URL        string
	UserAgent  string
	HTTPClient *http.Client
	logger     *slog.Logger
}

func NewPlaceService(cfg *helpers.Config, logger *slog.Logger) *PlaceService {
	return &PlaceService{
		URL:        cfg.NominatimURL,
		UserAgent:  "SmartTrip/1.0",
		HTTPClient: &http.Client{},
		logger:     logger.With("component", "places"),
	}
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Suggest returns up to five matches for query. Short queries and provider failures yield none.
func (s *PlaceService) Suggest(ctx context.Context, query string) []models.PlaceSuggestion {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minAutocompleteQuery {
		return []models.PlaceSuggestion{}
	}

	places, err := s.search(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "place autocomplete failed", "query", query, "error", err)
		return []models.PlaceSuggestion{}
	}

	suggestions := make([]models.PlaceSuggestion, 0, len(places))
	for _, p := range places {
		lat, latErr := strconv.ParseFloat(p.Lat, 64)
		lng, lngErr := strconv.ParseFloat(p.Lon, 64)
		if latErr != nil || lngErr != nil || p.DisplayName == "" {
			continue
		}
		suggestions = append(suggestions, models.PlaceSuggestion{DisplayName: p.DisplayName, Lat: lat, Lng: lng})
		if len(suggestions) == autocompleteLimit {
			break
		}
	}
	return suggestions
}

func (s *PlaceService) search(ctx context.Context, query string) ([]nominatimPlace, error) {
	params := url.Values{
		"q":              {query},
		"format":         {"json"},
		"addressdetails": {"1"},
		"limit":          {strconv.Itoa(autocompleteLimit)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying user agent
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: nominatim: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: nominatim status %d", models.ErrUpstream, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("%w: nominatim: %v", models.ErrParse, err)
	}
	return places, nil
}
