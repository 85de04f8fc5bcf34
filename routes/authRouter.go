package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/controllers"
)

func AuthRoutes(incomingRoutes *gin.RouterGroup, ctl *controllers.UserController) {
	incomingRoutes.POST("/auth/register", ctl.Signup())
	incomingRoutes.POST("/auth/login", ctl.Login())
}
