package routes

import (
	"github.com/agrisoko/agrisoko-api/controllers"
	"github.com/agrisoko/agrisoko-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	products := server.Group("/api/products", middlewares.RequireAuth())
	{
		products.POST("", controllers.CreateProduct)
		products.GET("", controllers.GetProducts)
		products.GET("/:id", controllers.GetProduct)
		products.PUT("/:id", controllers.UpdateProduct)
		products.DELETE("/:id", controllers.DeleteProduct)
		products.POST("/:id/images", controllers.UploadProductImage)
	}
}
