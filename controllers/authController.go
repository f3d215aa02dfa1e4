package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/agrisoko/agrisoko-api/initializers"
	"github.com/agrisoko/agrisoko-api/models"
	"github.com/agrisoko/agrisoko-api/permissions"
	"github.com/agrisoko/agrisoko-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput         = "invalid input"
	msgEmailRequired        = "Email is required"
	msgEmailTaken           = "This email is already in use."
	msgUsernameTaken        = "This username is already in use."
	msgInvalidRole          = "Invalid role"
	msgFailedToHashPassword = "failed to hash password"
	msgInvalidCredentials   = "invalid email or password"
	msgInternalServerError  = "Internal server error"
	msgFailedToGenToken     = "failed to generate token"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// normalizeEmail lowercases and trims an email, the canonical form used as
// the login key.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

// currentCaller resolves the authenticated caller from the claims stored by
// the auth middleware.
func currentCaller(ctx *gin.Context) permissions.Caller {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return permissions.Caller{}
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return permissions.Caller{}
	}
	return permissions.CallerFromClaims(claims)
}

type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Password string `json:"password"`
}

// validateNewUser runs the shared registration checks and returns a ready to
// persist user. Privileged flags are never set here.
func validateNewUser(input SignupInput) (models.User, string) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return models.User{}, msgEmailRequired
	}
	if input.Username == "" || input.Password == "" {
		return models.User{}, msgInvalidInput
	}
	if !models.IsValidRole(input.Role) {
		return models.User{}, msgInvalidRole
	}

	var count int64
	initializers.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return models.User{}, msgEmailTaken
	}
	initializers.DB.Model(&models.User{}).Where("username = ?", input.Username).Count(&count)
	if count > 0 {
		return models.User{}, msgUsernameTaken
	}

	return models.User{
		Username: input.Username,
		Email:    email,
		Role:     input.Role,
		Location: utils.SanitizeText(input.Location),
		IsActive: true,
	}, ""
}

// Signup handles public registration. The admin role cannot be claimed here;
// admins are created by other admins or seeded at startup.
func Signup(ctx *gin.Context) {
	var signUpData SignupInput
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if signUpData.Role == models.RoleAdmin {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidRole)
		return
	}

	user, msg := validateNewUser(signUpData)
	if msg != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msg)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}
	user.Password = hashedPassword

	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"user": user})
}

// Login authenticates with email and password and returns a JWT. The error
// message never reveals whether the email or the password was wrong.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := authenticate(loginData.Email, loginData.Password)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
}

// authenticate resolves email+password to an active user.
func authenticate(email, password string) (models.User, error) {
	user, err := findUserByEmail(normalizeEmail(email))
	if err != nil {
		return models.User{}, err
	}
	if err := comparePasswords(user.Password, password); err != nil {
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, errors.New("account disabled")
	}
	return user, nil
}
