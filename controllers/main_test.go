package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/agrisoko/agrisoko-api/initializers"
	"github.com/agrisoko/agrisoko-api/middlewares"
	"github.com/agrisoko/agrisoko-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// setupTestDB points initializers.DB at a fresh in-memory sqlite database.
// The database name is derived from the test name so tests never share
// state; shared cache keeps all pooled connections on the same database.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.MarketPrice{}); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	initializers.DB = db
}

// setupRouter wires the routes used by the controller tests.
func setupRouter() *gin.Engine {
	server := gin.New()

	auth := server.Group("/auth")
	auth.POST("/signup", Signup)
	auth.POST("/login", Login)

	api := server.Group("/api", middlewares.RequireAuth())
	api.GET("/users", GetUsers)
	api.GET("/users/:id", GetUser)
	api.PUT("/users/:id", UpdateUser)
	api.POST("/users", middlewares.RequireAdmin(), CreateUser)
	api.DELETE("/users/:id", middlewares.RequireAdmin(), DeleteUser)

	api.POST("/products", CreateProduct)
	api.GET("/products", GetProducts)
	api.GET("/products/:id", GetProduct)
	api.PUT("/products/:id", UpdateProduct)
	api.DELETE("/products/:id", DeleteProduct)

	api.POST("/orders", CreateOrder)
	api.GET("/orders", GetOrders)
	api.GET("/orders/:id", GetOrder)
	api.PATCH("/orders/:id/status", UpdateOrderStatus)
	api.PATCH("/orders/:id/payment", UpdatePaymentStatus)
	api.DELETE("/orders/:id", DeleteOrder)

	api.GET("/market-prices", GetMarketPrices)
	api.POST("/market-prices", middlewares.RequireAdmin(), CreateMarketPrice)
	api.PUT("/market-prices/:id", middlewares.RequireAdmin(), UpdateMarketPrice)
	api.DELETE("/market-prices/:id", middlewares.RequireAdmin(), DeleteMarketPrice)
	api.POST("/market-prices/import", middlewares.RequireAdmin(), ImportMarketPrices)

	return server
}

// createTestUser persists a user with the given role and returns it with a
// valid token. The password is always "password123".
func createTestUser(t *testing.T, username, role string) (models.User, string) {
	t.Helper()
	hash, err := hashPassword("password123")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		Location: "Nairobi",
		IsActive: true,
		Password: hash,
	}
	if err := initializers.DB.Create(&user).Error; err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	token, err := generateJWT(user)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return user, token
}

// performRequest serves a JSON request against the router and records the
// response. An empty token leaves the request unauthenticated.
func performRequest(router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body %q: %v", w.Body.String(), err)
	}
	return body
}
