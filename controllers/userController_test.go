package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/agrisoko/agrisoko-api/initializers"
	"github.com/agrisoko/agrisoko-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNonAdminSeesOnlyThemselves(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	createTestUser(t, "farmer1", models.RoleFarmer)
	bob, bobToken := createTestUser(t, "bob", models.RoleBuyer)
	createTestUser(t, "mover", models.RoleTransporter)

	w := performRequest(router, "GET", "/api/users", nil, bobToken)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	users := body["users"].([]any)
	assert.Len(t, users, 1)
	record := users[0].(map[string]any)
	assert.Equal(t, bob.Email, record["email"])
}

func TestAdminSeesAllUsers(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	createTestUser(t, "farmer1", models.RoleFarmer)
	createTestUser(t, "bob", models.RoleBuyer)
	_, adminToken := createTestUser(t, "root", models.RoleAdmin)

	w := performRequest(router, "GET", "/api/users", nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	users := body["users"].([]any)
	assert.Len(t, users, 3)
}

func TestGetOtherUserReadsAsNotFound(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	other, _ := createTestUser(t, "farmer1", models.RoleFarmer)
	_, bobToken := createTestUser(t, "bob", models.RoleBuyer)

	// Out-of-scope reads narrow silently: not found, not forbidden.
	w := performRequest(router, "GET", fmt.Sprintf("/api/users/%d", other.ID), nil, bobToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOtherUserForbidden(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	other, _ := createTestUser(t, "farmer1", models.RoleFarmer)
	_, bobToken := createTestUser(t, "bob", models.RoleBuyer)

	w := performRequest(router, "PUT", fmt.Sprintf("/api/users/%d", other.ID), gin.H{
		"location": "Mombasa",
	}, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserCanUpdateOwnProfile(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	bob, bobToken := createTestUser(t, "bob", models.RoleBuyer)

	w := performRequest(router, "PUT", fmt.Sprintf("/api/users/%d", bob.ID), gin.H{
		"location": "Mombasa",
		"role":     "admin",
	}, bobToken)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	initializers.DB.First(&updated, bob.ID)
	assert.Equal(t, "Mombasa", updated.Location)
	// Role changes are admin-only and silently dropped here.
	assert.Equal(t, models.RoleBuyer, updated.Role)
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	other, _ := createTestUser(t, "farmer1", models.RoleFarmer)
	_, bobToken := createTestUser(t, "bob", models.RoleBuyer)

	w := performRequest(router, "DELETE", fmt.Sprintf("/api/users/%d", other.ID), nil, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteUserCascades(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	farmer, _ := createTestUser(t, "farmer1", models.RoleFarmer)
	buyer, _ := createTestUser(t, "bob", models.RoleBuyer)
	_, adminToken := createTestUser(t, "root", models.RoleAdmin)

	product := models.Product{Name: "Maize", Price: 100, Quantity: 10, Category: models.CategoryGrains, FarmerID: farmer.ID, Location: "Nakuru"}
	initializers.DB.Create(&product)
	order := models.Order{BuyerID: buyer.ID, ProductID: product.ID, Quantity: 2, TotalPrice: 200, PaymentStatus: models.PaymentPending, OrderStatus: models.OrderPending}
	initializers.DB.Create(&order)

	w := performRequest(router, "DELETE", fmt.Sprintf("/api/users/%d", farmer.ID), nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	var productCount, orderCount int64
	initializers.DB.Model(&models.Product{}).Where("farmer_id = ?", farmer.ID).Count(&productCount)
	initializers.DB.Model(&models.Order{}).Where("product_id = ?", product.ID).Count(&orderCount)
	assert.Zero(t, productCount)
	assert.Zero(t, orderCount)
}

func TestAdminCreatesPrivilegedUser(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	_, adminToken := createTestUser(t, "root", models.RoleAdmin)

	w := performRequest(router, "POST", "/api/users", gin.H{
		"username": "root2",
		"email":    "root2@example.com",
		"role":     "admin",
		"location": "HQ",
		"password": "rootpass",
	}, adminToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.User
	initializers.DB.Where("username = ?", "root2").First(&created)
	assert.Equal(t, models.RoleAdmin, created.Role)
	assert.True(t, created.IsStaff)
}
