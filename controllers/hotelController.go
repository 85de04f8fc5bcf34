package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/models"
	"github.com/spycce/SmartTrip/services"
)

type HotelService interface {
	Search(ctx context.Context, city, checkIn, checkOut string) []models.Hotel
	Details(ctx context.Context, q services.DetailsQuery) (*models.HotelDetails, error)
}

type PlaceService interface {
	Suggest(ctx context.Context, query string) []models.PlaceSuggestion
}

type HotelController struct {
	hotels HotelService
	places PlaceService
}

func NewHotelController(hotels HotelService, places PlaceService) *HotelController {
	return &HotelController{hotels: hotels, places: places}
}

func (ctl *HotelController) SearchHotels() gin.HandlerFunc {
	return func(c *gin.Context) {
		city := strings.TrimSpace(c.Query("city"))
		if city == "" {
			badRequest(c, "City is required")
			return
		}
		c.JSON(http.StatusOK, ctl.hotels.Search(c.Request.Context(), city, c.Query("checkIn"), c.Query("checkOut")))
	}
}

func (ctl *HotelController) HotelDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID := strings.TrimSpace(c.Query("hotelId"))
		if hotelID == "" {
			badRequest(c, "HotelId is required")
			return
		}

		details, err := ctl.hotels.Details(c.Request.Context(), services.DetailsQuery{
			HotelID:  hotelID,
			CheckIn:  c.Query("checkIn"),
			CheckOut: c.Query("checkOut"),
			Adults:   c.Query("adults"),
			Rooms:    c.Query("rooms"),
		})
		// provider failures are not told apart for the client
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hotel details"})
			return
		}
		c.JSON(http.StatusOK, details)
	}
}

func (ctl *HotelController) Autocomplete() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ctl.places.Suggest(c.Request.Context(), c.Query("q")))
	}
}
