package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/agrisoko/agrisoko-api/initializers"
	"github.com/agrisoko/agrisoko-api/models"
	"github.com/agrisoko/agrisoko-api/permissions"
	"github.com/agrisoko/agrisoko-api/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
	ImageUrl    string  `json:"imageUrl"`
	Location    string  `json:"location"`
}

// validateProductInput sanitizes and checks a listing. The returned message
// is empty when the input is valid.
func validateProductInput(input *ProductInput) string {
	input.Name = utils.SanitizeText(input.Name)
	input.Location = utils.SanitizeText(input.Location)
	if input.Name == "" {
		return "Name is required"
	}
	if input.Price <= 0 {
		return "Price must be greater than zero."
	}
	if input.Quantity <= 0 {
		return "Quantity must be greater than zero."
	}
	if !models.IsValidCategory(input.Category) {
		return "Invalid category"
	}
	return ""
}

// CreateProduct lists a product for the authenticated farmer. The owner is
// always the caller; a farmerId in the request body is ignored.
func CreateProduct(ctx *gin.Context) {
	caller := currentCaller(ctx)
	if !permissions.CanCreateProduct(caller) {
		sendErrorResponse(ctx, http.StatusForbidden, "Only farmers can create products")
		return
	}

	var input ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if msg := validateProductInput(&input); msg != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msg)
		return
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Category:    input.Category,
		ImageUrl:    input.ImageUrl,
		FarmerID:    caller.ID,
		Location:    input.Location,
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// GetProducts lists the catalog newest first. Visible to every
// authenticated caller, regardless of role.
func GetProducts(ctx *gin.Context) {
	var products []models.Product

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	query := initializers.DB.Preload("Farmer")

	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	result := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	var count int64
	initializers.DB.Model(&models.Product{}).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	result := initializers.DB.Preload("Farmer").First(&product, productId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// UpdateProduct replaces a listing's fields. Owner or admin only.
func UpdateProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, productId); result.Error != nil {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	caller := currentCaller(ctx)
	if !permissions.CanManageProduct(caller, product) {
		sendErrorResponse(ctx, http.StatusForbidden, "You are not allowed to modify this product")
		return
	}

	var input ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if msg := validateProductInput(&input); msg != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msg)
		return
	}

	updates := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"quantity":    input.Quantity,
		"category":    input.Category,
		"image_url":   input.ImageUrl,
		"location":    input.Location,
	}
	if result := initializers.DB.Model(&product).Updates(updates); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func DeleteProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, productId); result.Error != nil {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	caller := currentCaller(ctx)
	if !permissions.CanManageProduct(caller, product) {
		sendErrorResponse(ctx, http.StatusForbidden, "You are not allowed to modify this product")
		return
	}

	// Orders referencing the product go with it.
	tx := initializers.DB.Begin()
	tx.Where("product_id = ?", product.ID).Delete(&models.Order{})
	tx.Delete(&product)
	if result := tx.Commit(); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadProductImage uploads a listing photo to S3 and stores the resulting
// URL on the product. Owner or admin only.
func UploadProductImage(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, productId); result.Error != nil {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	caller := currentCaller(ctx)
	if !permissions.CanManageProduct(caller, product) {
		sendErrorResponse(ctx, http.StatusForbidden, "You are not allowed to modify this product")
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No file uploaded", err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Unable to read uploaded file", err)
		return
	}
	defer f.Close()

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = "agrisoko"
	}

	// Unique key so re-uploads never overwrite each other.
	uniqueFilename := fmt.Sprintf("%d-%s-%s", productId, time.Now().Format("20060102150405"), file.Filename)

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(uniqueFilename),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	if err := initializers.DB.Model(&product).Update("image_url", result.Location).Error; err != nil {
		log.Printf("Image uploaded but not saved for product %d: %v", product.ID, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save image URL", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded successfully.",
		"url":     result.Location,
	})
}
