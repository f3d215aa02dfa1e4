package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetApiInfo(ctx *gin.Context) {
	message := `Welcome to the Agrisoko API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

USERS (authenticated)
- GET "/api/users" - List users visible to you
- GET "/api/users/{id}" - Get user by ID
- PUT "/api/users/{id}" - Update user
- POST "/api/users" - Create user (admin)
- DELETE "/api/users/{id}" - Delete user (admin)

PRODUCTS (authenticated)
- POST "/api/products" - Create product listing (farmer)
- GET "/api/products" - List products
- GET "/api/products/{id}" - Get product by ID
- PUT "/api/products/{id}" - Update product (owner or admin)
- DELETE "/api/products/{id}" - Delete product (owner or admin)
- POST "/api/products/{id}/images" - Upload product image (owner or admin)

ORDERS (authenticated)
- POST "/api/orders" - Place a new order
- GET "/api/orders" - List orders visible to you
- GET "/api/orders/{id}" - Get order by ID
- PATCH "/api/orders/{id}/status" - Update delivery status
- PATCH "/api/orders/{id}/payment" - Update payment status
- DELETE "/api/orders/{id}" - Delete order

MARKET PRICES (authenticated)
- GET "/api/market-prices" - List market price records
- POST "/api/market-prices" - Add a record (admin)
- PUT "/api/market-prices/{id}" - Update a record (admin)
- DELETE "/api/market-prices/{id}" - Delete a record (admin)
- POST "/api/market-prices/import" - Import records from the market data feed (admin)

PAGES
- GET "/register", GET/POST "/login", GET "/logout"
- GET "/home", "/farmer-dashboard", "/buyer-dashboard", "/transporter-dashboard"`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
