package routes

import (
	"github.com/agrisoko/agrisoko-api/controllers"
	"github.com/agrisoko/agrisoko-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/api/orders", middlewares.RequireAuth())
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("", controllers.GetOrders)
		orders.GET("/:id", controllers.GetOrder)
		orders.PATCH("/:id/status", controllers.UpdateOrderStatus)
		orders.PATCH("/:id/payment", controllers.UpdatePaymentStatus)
		orders.DELETE("/:id", controllers.DeleteOrder)
	}
}
