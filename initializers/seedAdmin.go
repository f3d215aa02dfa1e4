package initializers

import (
	"log"
	"os"
	"strings"

	"github.com/agrisoko/agrisoko-api/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates a bootstrap admin account from ADMIN_EMAIL,
// ADMIN_USERNAME and ADMIN_PASSWORD when no admin exists yet. Without these
// variables the instance starts with no admin at all.
func SeedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("Could not hash admin password:", err)
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	admin := models.User{
		Username: username,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Role:     models.RoleAdmin,
		Location: "HQ",
		IsActive: true,
		IsStaff:  true,
		Password: string(hash),
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Println("Could not create admin account:", err)
		return
	}
	log.Println("Admin account created for", admin.Email)
}
