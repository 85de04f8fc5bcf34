package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/models"
)

type FeedService interface {
	Landing(ctx context.Context) (*models.LandingFeed, error)
	Albums(ctx context.Context, ownerID string) ([]models.Album, error)
}

type FeedController struct {
	feed FeedService
}

func NewFeedController(feed FeedService) *FeedController {
	return &FeedController{feed: feed}
}

func (ctl *FeedController) Landing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		feed, err := ctl.feed.Landing(ctx)
		if err != nil {
			respondError(c, err, "Error fetching public feed")
			return
		}
		c.JSON(http.StatusOK, feed)
	}
}

func (ctl *FeedController) Albums() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		albums, err := ctl.feed.Albums(ctx, userID(c))
		if err != nil {
			respondError(c, err, "Error fetching albums")
			return
		}
		c.JSON(http.StatusOK, albums)
	}
}
