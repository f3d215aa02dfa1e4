package routes

import (
	"github.com/agrisoko/agrisoko-api/controllers"
	"github.com/agrisoko/agrisoko-api/middlewares"
	"github.com/gin-gonic/gin"
)

func MarketPriceRoutes(server *gin.Engine) {
	prices := server.Group("/api/market-prices", middlewares.RequireAuth())
	{
		prices.GET("", controllers.GetMarketPrices)
		prices.POST("", middlewares.RequireAdmin(), controllers.CreateMarketPrice)
		prices.PUT("/:id", middlewares.RequireAdmin(), controllers.UpdateMarketPrice)
		prices.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeleteMarketPrice)
		prices.POST("/import", middlewares.RequireAdmin(), controllers.ImportMarketPrices)
	}
}
