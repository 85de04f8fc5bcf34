package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/controllers"
)

func PlanRoutes(incomingRoutes *gin.RouterGroup, generate *controllers.GenerateController, hotels *controllers.HotelController, auth gin.HandlerFunc) {
	incomingRoutes.POST("/trip/generate", auth, generate.GenerateTrip())

	incomingRoutes.GET("/hotels/search", hotels.SearchHotels())
	incomingRoutes.GET("/hotels/details", hotels.HotelDetails())
	incomingRoutes.GET("/places/autocomplete", hotels.Autocomplete())
}
