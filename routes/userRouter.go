package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/controllers"
)

func UserRoutes(incomingRoutes *gin.RouterGroup, ctl *controllers.UserController, auth gin.HandlerFunc) {
	incomingRoutes.GET("/users/me", auth, ctl.Me())
}
