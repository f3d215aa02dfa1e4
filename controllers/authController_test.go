package controllers

import (
	"net/http"
	"testing"

	"github.com/agrisoko/agrisoko-api/initializers"
	"github.com/agrisoko/agrisoko-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSignupAndLogin(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	w := performRequest(router, "POST", "/auth/signup", gin.H{
		"username": "farmer1",
		"email":    "farmer@example.com",
		"role":     "farmer",
		"location": "Nakuru",
		"password": "farmerpass",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, "POST", "/auth/login", gin.H{
		"email":    "farmer@example.com",
		"password": "farmerpass",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
}

func TestSignupNormalizesEmail(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	w := performRequest(router, "POST", "/auth/signup", gin.H{
		"username": "alice",
		"email":    "  Alice@Example.COM ",
		"role":     "buyer",
		"password": "alicepass",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	initializers.DB.Where("username = ?", "alice").First(&user)
	assert.Equal(t, "alice@example.com", user.Email)

	// Login with the canonical form works.
	w = performRequest(router, "POST", "/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "alicepass",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupMissingEmail(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	w := performRequest(router, "POST", "/auth/signup", gin.H{
		"username": "noemail",
		"role":     "buyer",
		"password": "somepass",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is required", decodeBody(t, w)["message"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	createTestUser(t, "bob", models.RoleBuyer)

	w := performRequest(router, "POST", "/auth/signup", gin.H{
		"username": "bob2",
		"email":    "bob@example.com",
		"role":     "buyer",
		"password": "bobpass",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This email is already in use.", decodeBody(t, w)["message"])
}

func TestSignupRejectsAdminRole(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	w := performRequest(router, "POST", "/auth/signup", gin.H{
		"username": "sneaky",
		"email":    "sneaky@example.com",
		"role":     "admin",
		"password": "sneakypass",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	createTestUser(t, "carol", models.RoleBuyer)

	// Wrong password and unknown email produce the same message.
	w := performRequest(router, "POST", "/auth/login", gin.H{
		"email":    "carol@example.com",
		"password": "wrongpass",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid email or password", decodeBody(t, w)["message"])

	w = performRequest(router, "POST", "/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid email or password", decodeBody(t, w)["message"])
}

func TestLoginInactiveAccount(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	user, _ := createTestUser(t, "dormant", models.RoleBuyer)
	initializers.DB.Model(&user).Update("is_active", false)

	w := performRequest(router, "POST", "/auth/login", gin.H{
		"email":    "dormant@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid email or password", decodeBody(t, w)["message"])
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	w := performRequest(router, "GET", "/api/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, "GET", "/api/products", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
