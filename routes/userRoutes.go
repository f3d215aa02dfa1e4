package routes

import (
	"github.com/agrisoko/agrisoko-api/controllers"
	"github.com/agrisoko/agrisoko-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine) {
	users := server.Group("/api/users", middlewares.RequireAuth())
	{
		users.GET("", controllers.GetUsers)
		users.GET("/:id", controllers.GetUser)
		users.PUT("/:id", controllers.UpdateUser)
		users.POST("", middlewares.RequireAdmin(), controllers.CreateUser)
		users.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeleteUser)
	}
}
