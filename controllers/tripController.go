package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/models"
)

type TripService interface {
	List(ctx context.Context, ownerID string) ([]models.Trip, error)
	Create(ctx context.Context, ownerID string, payload models.TripPayload) (*models.Trip, error)
	Get(ctx context.Context, ownerID, tripID string) (*models.Trip, error)
	Delete(ctx context.Context, ownerID, tripID string) error
	AddReview(ctx context.Context, tripID, authorID, authorName string, rating int, comment string) ([]models.Review, error)
	EditReview(ctx context.Context, tripID, reviewID, editorID string, rating int, comment string) ([]models.Review, error)
	DeleteReview(ctx context.Context, tripID, reviewID, requesterID string) ([]models.Review, error)
	ToggleShare(ctx context.Context, ownerID, tripID string) (bool, error)
	GetPublicByID(ctx context.Context, tripID string) (*models.Trip, error)
}

type TripController struct {
	trips    TripService
	identity IdentityService
}

func NewTripController(trips TripService, identity IdentityService) *TripController {
	return &TripController{trips: trips, identity: identity}
}

func (ctl *TripController) GetAllMyTrip() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		trips, err := ctl.trips.List(ctx, userID(c))
		if err != nil {
			respondError(c, err, "Error fetching trips")
			return
		}
		c.JSON(http.StatusOK, trips)
	}
}

func (ctl *TripController) CreateTrip() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		var payload models.TripPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			badRequest(c, "Invalid request body: "+err.Error())
			return
		}
		if err := validate.Struct(payload); err != nil {
			badRequest(c, "Validation error: "+err.Error())
			return
		}

		trip, err := ctl.trips.Create(ctx, userID(c), payload)
		if err != nil {
			respondError(c, err, "Failed to create trip")
			return
		}
		c.JSON(http.StatusCreated, trip)
	}
}

func (ctl *TripController) GetTrip() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		trip, err := ctl.trips.Get(ctx, userID(c), c.Param("id"))
		if err != nil {
			respondError(c, err, "Error fetching trip")
			return
		}
		c.JSON(http.StatusOK, trip)
	}
}

func (ctl *TripController) DeleteTrip() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		if err := ctl.trips.Delete(ctx, userID(c), c.Param("id")); err != nil {
			respondError(c, err, "Error deleting trip")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	}
}

func (ctl *TripController) AddReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		var req models.ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body: "+err.Error())
			return
		}
		if err := validate.Struct(req); err != nil {
			badRequest(c, "Validation error: "+err.Error())
			return
		}

		uid := userID(c)
		authorName := req.UserName
		if authorName == "" {
			profile, err := ctl.identity.Profile(ctx, uid)
			if err != nil {
				respondError(c, err, "Error adding review")
				return
			}
			authorName = profile.Name
		}

		reviews, err := ctl.trips.AddReview(ctx, c.Param("id"), uid, authorName, req.Rating, req.Comment)
		if err != nil {
			respondError(c, err, "Error adding review")
			return
		}
		c.JSON(http.StatusCreated, reviews)
	}
}

func (ctl *TripController) EditReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		var req models.ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body: "+err.Error())
			return
		}
		if err := validate.Struct(req); err != nil {
			badRequest(c, "Validation error: "+err.Error())
			return
		}

		reviews, err := ctl.trips.EditReview(ctx, c.Param("id"), c.Param("reviewId"), userID(c), req.Rating, req.Comment)
		if err != nil {
			respondError(c, err, "Error updating review")
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

func (ctl *TripController) DeleteReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		reviews, err := ctl.trips.DeleteReview(ctx, c.Param("id"), c.Param("reviewId"), userID(c))
		if err != nil {
			respondError(c, err, "Error deleting review")
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

func (ctl *TripController) ToggleShare() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		shared, err := ctl.trips.ToggleShare(ctx, userID(c), c.Param("id"))
		if err != nil {
			respondError(c, err, "Error toggling share status")
			return
		}
		c.JSON(http.StatusOK, models.ShareStatus{IsShared: shared})
	}
}

// GetPublicTrip needs no token; private and missing trips both answer 404.
func (ctl *TripController) GetPublicTrip() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		trip, err := ctl.trips.GetPublicByID(ctx, c.Param("id"))
		if err != nil {
			respondError(c, err, "Error fetching public trip")
			return
		}
		c.JSON(http.StatusOK, trip)
	}
}
