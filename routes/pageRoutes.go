package routes

import (
	"github.com/agrisoko/agrisoko-api/controllers"
	"github.com/agrisoko/agrisoko-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PageRoutes(server *gin.Engine) {
	server.GET("/register", controllers.RegisterPage)
	server.GET("/login", controllers.LoginPage)
	server.POST("/login", controllers.HandleLoginForm)
	server.GET("/logout", controllers.Logout)

	pages := server.Group("/", middlewares.RequirePageAuth())
	{
		pages.GET("/home", controllers.HomePage)
		pages.GET("/farmer-dashboard", controllers.FarmerDashboard)
		pages.GET("/buyer-dashboard", controllers.BuyerDashboard)
		pages.GET("/transporter-dashboard", controllers.TransporterDashboard)
	}
}
