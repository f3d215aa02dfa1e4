package main

import (
	"time"

	"github.com/agrisoko/agrisoko-api/initializers"
	"github.com/agrisoko/agrisoko-api/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
	initializers.SeedAdmin()
}

func main() {
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "https://www.agrisoko.store"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.LoadHTMLGlob("templates/*.html")
	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.UserRoutes(server)
	routes.ProductRoutes(server)
	routes.OrderRoutes(server)
	routes.MarketPriceRoutes(server)
	routes.PageRoutes(server)
	server.Run()
}
