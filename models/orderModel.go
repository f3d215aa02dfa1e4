package models

import "gorm.io/gorm"

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"

	OrderPending   = "pending"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
)

type Order struct {
	gorm.Model
	BuyerID       uint    `json:"buyerId"`
	Buyer         User    `json:"buyer,omitempty" gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE"`
	ProductID     uint    `json:"productId"`
	Product       Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity      int     `json:"quantity"`
	TotalPrice    float64 `json:"totalPrice"`
	PaymentStatus string  `json:"paymentStatus" gorm:"size:20;default:pending"`
	OrderStatus   string  `json:"orderStatus" gorm:"size:20;default:pending"`
}

// IsValidPaymentStatus reports whether status is a known payment status.
func IsValidPaymentStatus(status string) bool {
	return status == PaymentPending || status == PaymentPaid
}

// IsValidOrderStatus reports whether status is a known delivery status.
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderShipped, OrderDelivered:
		return true
	}
	return false
}
