package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/agrisoko/agrisoko-api/initializers"
	"github.com/agrisoko/agrisoko-api/models"
	"github.com/agrisoko/agrisoko-api/permissions"
	"github.com/agrisoko/agrisoko-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateUser lets an admin create an account with any role, including
// another admin with staff access.
func CreateUser(ctx *gin.Context) {
	var input struct {
		SignupInput
		IsStaff bool `json:"isStaff"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, msg := validateNewUser(input.SignupInput)
	if msg != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msg)
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}
	user.Password = hashedPassword
	if user.Role == models.RoleAdmin {
		user.IsStaff = true
	} else {
		user.IsStaff = input.IsStaff
	}

	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"user": user})
}

// GetUsers lists users visible to the caller: admins see everyone, other
// roles only their own record.
func GetUsers(ctx *gin.Context) {
	caller := currentCaller(ctx)

	var users []models.User
	if result := initializers.DB.Scopes(permissions.UserScope(caller)).Find(&users); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch users")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": users})
}

func GetUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	caller := currentCaller(ctx)

	// Out-of-scope records read as not found, never as forbidden.
	var user models.User
	result := initializers.DB.Scopes(permissions.UserScope(caller)).First(&user, userId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve user")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

func UpdateUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	caller := currentCaller(ctx)
	if !permissions.CanManageUser(caller, uint(userId)) {
		sendErrorResponse(ctx, http.StatusForbidden, "You are not allowed to update this user")
		return
	}

	var user models.User
	if result := initializers.DB.First(&user, userId); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Location string `json:"location"`
		Role     string `json:"role"`
		IsActive *bool  `json:"isActive"`
		IsStaff  *bool  `json:"isStaff"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	if input.Username != "" {
		updates["username"] = input.Username
	}
	if input.Email != "" {
		email := normalizeEmail(input.Email)
		var count int64
		initializers.DB.Model(&models.User{}).
			Where("email = ? AND id <> ?", email, userId).Count(&count)
		if count > 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, msgEmailTaken)
			return
		}
		updates["email"] = email
	}
	if input.Location != "" {
		updates["location"] = utils.SanitizeText(input.Location)
	}

	// Role and account flags are admin-only edits.
	if caller.IsAdmin() {
		if input.Role != "" {
			if !models.IsValidRole(input.Role) {
				sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidRole)
				return
			}
			updates["role"] = input.Role
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}
		if input.IsStaff != nil {
			updates["is_staff"] = *input.IsStaff
		}
	}

	if result := initializers.DB.Model(&user).Updates(updates); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update user")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a user. Dependent products and orders go with it
// through the cascade constraints. Admin only, enforced at the route.
func DeleteUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var user models.User
	if result := initializers.DB.First(&user, userId); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	// Cascade: orders placed by the user, then products they listed (and
	// orders on those products), then the user record itself.
	tx := initializers.DB.Begin()
	tx.Where("buyer_id = ?", user.ID).Delete(&models.Order{})
	var productIDs []uint
	tx.Model(&models.Product{}).Where("farmer_id = ?", user.ID).Pluck("id", &productIDs)
	if len(productIDs) > 0 {
		tx.Where("product_id IN ?", productIDs).Delete(&models.Order{})
		tx.Where("farmer_id = ?", user.ID).Delete(&models.Product{})
	}
	tx.Delete(&user)
	if result := tx.Commit(); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to delete user")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted successfully."})
}
