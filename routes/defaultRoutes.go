package routes

import (
	"github.com/agrisoko/agrisoko-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetApiInfo)
}
