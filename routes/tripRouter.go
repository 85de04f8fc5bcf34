package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/controllers"
	"github.com/spycce/SmartTrip/middleware"
	"github.com/spycce/SmartTrip/models"
)

func TripRoutes(incomingRoutes *gin.RouterGroup, trips *controllers.TripController, photos *controllers.PhotoController, auth gin.HandlerFunc) {
	group := incomingRoutes.Group("/trips", auth)
	group.GET("", trips.GetAllMyTrip())
	group.POST("", trips.CreateTrip())
	group.GET("/:id", trips.GetTrip())
	group.DELETE("/:id", trips.DeleteTrip())
	group.POST("/:id/reviews", trips.AddReview())
	group.PUT("/:id/reviews/:reviewId", trips.EditReview())
	group.DELETE("/:id/reviews/:reviewId", trips.DeleteReview())
	group.POST("/:id/share", trips.ToggleShare())
	group.POST("/:id/photos", middleware.LimitBody(models.MaxPhotoBytes), photos.UploadPhoto())
	group.GET("/:id/photos", photos.GetTripPhotos())
}

func PhotoRoutes(incomingRoutes *gin.RouterGroup, photos *controllers.PhotoController, feed *controllers.FeedController, auth gin.HandlerFunc) {
	group := incomingRoutes.Group("/photos", auth)
	group.PUT("/:id/share", photos.ToggleShare())
	group.PUT("/:id", photos.UpdateCaption())
	group.DELETE("/:id", photos.DeletePhoto())

	incomingRoutes.GET("/albums", auth, feed.Albums())
}

// PublicRoutes are reachable without a token.
func PublicRoutes(incomingRoutes *gin.RouterGroup, trips *controllers.TripController, feed *controllers.FeedController) {
	incomingRoutes.GET("/public/landing", feed.Landing())
	incomingRoutes.GET("/public/trips/:id", trips.GetPublicTrip())
}
