package controllers

import (
	"log"
	"net/http"

	"github.com/agrisoko/agrisoko-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Cookie lifetime matches the JWT expiry of 30 days.
const sessionCookieMaxAge = 30 * 24 * 60 * 60

func RegisterPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "register.html", nil)
}

func LoginPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", nil)
}

// HandleLoginForm authenticates the posted email and password, stores the
// JWT in an HTTP-only cookie and redirects by role. Failures re-render the
// login page with a generic message.
func HandleLoginForm(ctx *gin.Context) {
	email := ctx.PostForm("email")
	password := ctx.PostForm("password")

	user, err := authenticate(email, password)
	if err != nil {
		ctx.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid email or password"})
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		ctx.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong, try again."})
		return
	}

	ctx.SetCookie("token", tokenString, sessionCookieMaxAge, "/", "", false, true)
	ctx.Redirect(http.StatusFound, dashboardPath(user.Role))
}

// dashboardPath maps a role to its post-login destination.
func dashboardPath(role string) string {
	switch role {
	case models.RoleFarmer:
		return "/farmer-dashboard"
	case models.RoleBuyer:
		return "/buyer-dashboard"
	case models.RoleTransporter:
		return "/transporter-dashboard"
	default:
		return "/home"
	}
}

// Logout clears the session cookie and sends the visitor back to the login
// page.
func Logout(ctx *gin.Context) {
	ctx.SetCookie("token", "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/login")
}

func renderDashboard(ctx *gin.Context, template string) {
	userClaims, _ := ctx.Get("user")
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	ctx.HTML(http.StatusOK, template, gin.H{
		"Username": username,
		"Role":     role,
	})
}

func HomePage(ctx *gin.Context) {
	renderDashboard(ctx, "home.html")
}

func FarmerDashboard(ctx *gin.Context) {
	renderDashboard(ctx, "farmer_home.html")
}

func BuyerDashboard(ctx *gin.Context) {
	renderDashboard(ctx, "buyer_home.html")
}

func TransporterDashboard(ctx *gin.Context) {
	renderDashboard(ctx, "transporter_home.html")
}
