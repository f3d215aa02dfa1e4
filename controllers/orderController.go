package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/agrisoko/agrisoko-api/initializers"
	"github.com/agrisoko/agrisoko-api/models"
	"github.com/agrisoko/agrisoko-api/permissions"
	"github.com/agrisoko/agrisoko-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type OrderInput struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
	// TotalPrice is accepted in the body but never used; the total is
	// always recomputed from the product's current price.
	TotalPrice float64 `json:"totalPrice"`
}

// CreateOrder places an order for the authenticated caller. The total is
// derived server-side as product price times quantity; whatever total the
// client sent is discarded. The new order starts with payment and delivery
// both pending.
func CreateOrder(ctx *gin.Context) {
	var orderInfo OrderInput
	if err := ctx.ShouldBindJSON(&orderInfo); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if orderInfo.Quantity <= 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be greater than zero.")
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, orderInfo.ProductID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to resolve product")
		}
		return
	}

	caller := currentCaller(ctx)

	order := models.Order{
		BuyerID:       caller.ID,
		ProductID:     product.ID,
		Quantity:      orderInfo.Quantity,
		TotalPrice:    product.Price * float64(orderInfo.Quantity),
		PaymentStatus: models.PaymentPending,
		OrderStatus:   models.OrderPending,
	}

	if result := initializers.DB.Create(&order); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	sendOrderConfirmation(ctx, order, product)

	order.Product = product
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"order": order})
}

// sendOrderConfirmation emails the buyer, best effort. A mail failure never
// fails the order.
func sendOrderConfirmation(ctx *gin.Context, order models.Order, product models.Product) {
	if os.Getenv("SMTP_ADDRESS") == "" {
		return
	}

	userClaims, exists := ctx.Get("user")
	if !exists {
		return
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return
	}
	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)
	if email == "" {
		return
	}

	emailData := utils.OrderEmailData{
		Name:        username,
		ProductName: product.Name,
		Quantity:    order.Quantity,
		TotalPrice:  order.TotalPrice,
		OrderID:     order.ID,
	}
	templatePath := filepath.Join("templates", "order_confirmation.html")
	if err := utils.SendEmail(email, "Order Confirmation", emailData, templatePath); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}
}

// GetOrders lists orders visible to the caller, newest first. Admins see
// every order; everyone else only the orders they placed.
func GetOrders(ctx *gin.Context) {
	caller := currentCaller(ctx)

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	query := initializers.DB.Preload("Product").
		Scopes(permissions.OrderScope(caller)).
		Order("created_at desc")

	var orders []models.Order
	result := query.Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	var count int64
	initializers.DB.Model(&models.Order{}).
		Scopes(permissions.OrderScope(caller)).Count(&count)

	totalPages := math.Ceil(float64(count) / float64(limit))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":       count,
			"currentPage": page,
			"limit":       limit,
			"hasPrevPage": page > 1,
			"hasNextPage": int(totalPages) > page,
		},
	})
}

// GetOrder fetches a single order. Out-of-scope orders read as not found.
func GetOrder(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	caller := currentCaller(ctx)

	var order models.Order
	result := initializers.DB.Preload("Product").
		Scopes(permissions.OrderScope(caller)).First(&order, orderId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve order")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// findManagedOrder loads an order and checks the caller may modify it.
func findManagedOrder(ctx *gin.Context) (models.Order, bool) {
	orderId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return models.Order{}, false
	}

	var order models.Order
	if result := initializers.DB.First(&order, orderId); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return models.Order{}, false
	}

	caller := currentCaller(ctx)
	if !permissions.CanManageOrder(caller, order) {
		sendErrorResponse(ctx, http.StatusForbidden, "You are not allowed to modify this order")
		return models.Order{}, false
	}

	return order, true
}

func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if !models.IsValidOrderStatus(orderStatusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order status")
		return
	}

	order, ok := findManagedOrder(ctx)
	if !ok {
		return
	}

	if result := initializers.DB.Model(&order).Update("order_status", orderStatusData.Status); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}

func UpdatePaymentStatus(ctx *gin.Context) {
	var paymentStatusData struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&paymentStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if !models.IsValidPaymentStatus(paymentStatusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid payment status")
		return
	}

	order, ok := findManagedOrder(ctx)
	if !ok {
		return
	}

	if result := initializers.DB.Model(&order).Update("payment_status", paymentStatusData.Status); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update payment status")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Payment status updated successfully."})
}

func DeleteOrder(ctx *gin.Context) {
	order, ok := findManagedOrder(ctx)
	if !ok {
		return
	}

	if result := initializers.DB.Delete(&order); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}
