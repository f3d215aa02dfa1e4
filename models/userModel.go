package models

import "gorm.io/gorm"

const (
	RoleFarmer      = "farmer"
	RoleBuyer       = "buyer"
	RoleTransporter = "transporter"
	RoleAdmin       = "admin"
)

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"size:50;uniqueIndex"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Role     string `json:"role" gorm:"size:20"`
	Location string `json:"location" gorm:"size:100"`
	IsActive bool   `json:"isActive" gorm:"default:true"`
	IsStaff  bool   `json:"isStaff" gorm:"default:false"`
	Password string `json:"-"`
}

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IsValidRole reports whether role is one of the four known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleFarmer, RoleBuyer, RoleTransporter, RoleAdmin:
		return true
	}
	return false
}
