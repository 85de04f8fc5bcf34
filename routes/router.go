package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/controllers"
	"github.com/spycce/SmartTrip/middleware"
)

type Controllers struct {
	Users    *controllers.UserController
	Trips    *controllers.TripController
	Photos   *controllers.PhotoController
	Feed     *controllers.FeedController
	Generate *controllers.GenerateController
	Hotels   *controllers.HotelController
}

func NewRouter(ctl Controllers, verifier middleware.TokenVerifier, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "SmartTrip API running"})
	})

	auth := middleware.Authenticate(verifier)
	api := r.Group("/api")

	logger.Debug("registering routes")
	AuthRoutes(api, ctl.Users)
	UserRoutes(api, ctl.Users, auth)
	TripRoutes(api, ctl.Trips, ctl.Photos, auth)
	PhotoRoutes(api, ctl.Photos, ctl.Feed, auth)
	PublicRoutes(api, ctl.Trips, ctl.Feed)
	PlanRoutes(api, ctl.Generate, ctl.Hotels, auth)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
	return r
}
