// Package permissions holds the role-based visibility and ownership rules.
// Every decision is a pure function of the caller and the resource, so the
// rules can be tested without a router or a database.
package permissions

import (
	"github.com/agrisoko/agrisoko-api/models"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Caller identifies the authenticated user behind a request.
type Caller struct {
	ID   uint
	Role string
}

// CallerFromClaims extracts the caller from verified JWT claims. JWT numbers
// decode as float64.
func CallerFromClaims(claims jwt.MapClaims) Caller {
	var caller Caller
	if id, ok := claims["user_id"].(float64); ok {
		caller.ID = uint(id)
	}
	if role, ok := claims["role"].(string); ok {
		caller.Role = role
	}
	return caller
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// CanCreateProduct allows only farmers to list products.
func CanCreateProduct(c Caller) bool {
	return c.Role == models.RoleFarmer
}

// CanManageUser allows a user to modify their own record, and admins to
// modify anyone's.
func CanManageUser(c Caller, userID uint) bool {
	return c.IsAdmin() || c.ID == userID
}

// CanManageProduct allows the owning farmer or an admin to modify a product.
func CanManageProduct(c Caller, product models.Product) bool {
	return c.IsAdmin() || product.FarmerID == c.ID
}

// CanManageOrder allows the buyer who placed an order or an admin to modify it.
func CanManageOrder(c Caller, order models.Order) bool {
	return c.IsAdmin() || order.BuyerID == c.ID
}

// CanManageMarketPrice restricts ledger writes to admins.
func CanManageMarketPrice(c Caller) bool {
	return c.IsAdmin()
}

// UserScope narrows a user query to the records visible to the caller:
// admins see everyone, everybody else sees only themselves.
func UserScope(c Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if c.IsAdmin() {
			return db
		}
		return db.Where("id = ?", c.ID)
	}
}

// OrderScope narrows an order query to the records visible to the caller:
// admins see every order, everybody else sees only orders they placed.
func OrderScope(c Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if c.IsAdmin() {
			return db
		}
		return db.Where("buyer_id = ?", c.ID)
	}
}
