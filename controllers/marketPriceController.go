package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/agrisoko/agrisoko-api/initializers"
	"github.com/agrisoko/agrisoko-api/models"
	"github.com/agrisoko/agrisoko-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

type MarketPriceInput struct {
	ProductName  string  `json:"productName"`
	Region       string  `json:"region"`
	Price        float64 `json:"price"`
	DateRecorded string  `json:"dateRecorded"`
}

// validateMarketPrice sanitizes free-text fields and checks a ledger entry.
// The ledger deliberately does not check the product name against the
// catalog.
func validateMarketPrice(input *MarketPriceInput) (datatypes.Date, string) {
	input.ProductName = utils.SanitizeText(input.ProductName)
	input.Region = utils.SanitizeText(input.Region)
	if input.ProductName == "" {
		return datatypes.Date{}, "Product name is required"
	}
	if input.Price <= 0 {
		return datatypes.Date{}, "Price must be positive."
	}
	recorded, err := time.Parse(dateLayout, input.DateRecorded)
	if err != nil {
		return datatypes.Date{}, "Invalid date, expected YYYY-MM-DD"
	}
	return datatypes.Date(recorded), ""
}

// CreateMarketPrice appends a record to the price ledger. Admin only,
// enforced at the route.
func CreateMarketPrice(ctx *gin.Context) {
	var input MarketPriceInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	recorded, msg := validateMarketPrice(&input)
	if msg != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msg)
		return
	}

	record := models.MarketPrice{
		ProductName:  input.ProductName,
		Region:       input.Region,
		Price:        input.Price,
		DateRecorded: recorded,
	}
	if result := initializers.DB.Create(&record); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create market price")
		return
	}

	ctx.JSON(http.StatusCreated, record)
}

// GetMarketPrices lists the ledger, most recent date first, optionally
// filtered by region and exact date.
func GetMarketPrices(ctx *gin.Context) {
	query := initializers.DB.Model(&models.MarketPrice{})

	if region := ctx.Query("region"); region != "" {
		query = query.Where("region = ?", region)
	}
	if date := ctx.Query("date"); date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("date_recorded = ?", datatypes.Date(parsed))
	}

	var prices []models.MarketPrice
	if result := query.Order("date_recorded desc").Find(&prices); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch market prices")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"marketPrices": prices})
}

func UpdateMarketPrice(ctx *gin.Context) {
	priceId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid market price ID")
		return
	}

	var record models.MarketPrice
	if result := initializers.DB.First(&record, priceId); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Market price not found")
		return
	}

	var input MarketPriceInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	recorded, msg := validateMarketPrice(&input)
	if msg != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msg)
		return
	}

	updates := map[string]any{
		"product_name":  input.ProductName,
		"region":        input.Region,
		"price":         input.Price,
		"date_recorded": recorded,
	}
	if result := initializers.DB.Model(&record).Updates(updates); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update market price")
		return
	}

	ctx.JSON(http.StatusOK, record)
}

func DeleteMarketPrice(ctx *gin.Context) {
	priceId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid market price ID")
		return
	}

	var record models.MarketPrice
	if result := initializers.DB.First(&record, priceId); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Market price not found")
		return
	}

	if result := initializers.DB.Delete(&record); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete market price")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Market price deleted successfully."})
}

type marketFeedRecord struct {
	ProductName  string  `json:"product_name"`
	Region       string  `json:"region"`
	Price        float64 `json:"price"`
	DateRecorded string  `json:"date_recorded"`
}

// ImportMarketPrices pulls a JSON feed of price records from MARKET_DATA_URL
// and appends every valid row to the ledger. Rows failing validation are
// counted and skipped rather than failing the whole import.
func ImportMarketPrices(ctx *gin.Context) {
	feedURL := os.Getenv("MARKET_DATA_URL")
	if feedURL == "" {
		sendErrorResponse(ctx, http.StatusInternalServerError, "MARKET_DATA_URL is not set")
		return
	}

	client := resty.New().SetTimeout(30 * time.Second)
	resp, err := client.R().
		SetHeader("Accept", "application/json").
		Get(feedURL)
	if err != nil {
		log.Println("Market feed request error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to fetch market data feed")
		return
	}
	if resp.StatusCode() != http.StatusOK {
		log.Printf("Market feed returned status %d: %s", resp.StatusCode(), string(resp.Body()))
		sendErrorResponse(ctx, http.StatusBadGateway, "Market data feed request failed")
		return
	}

	var records []marketFeedRecord
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		sendErrorResponse(ctx, http.StatusBadGateway, "Invalid response from market data feed")
		return
	}

	imported, skipped := 0, 0
	for _, record := range records {
		input := MarketPriceInput{
			ProductName:  record.ProductName,
			Region:       record.Region,
			Price:        record.Price,
			DateRecorded: record.DateRecorded,
		}
		recorded, msg := validateMarketPrice(&input)
		if msg != "" {
			skipped++
			continue
		}
		entry := models.MarketPrice{
			ProductName:  input.ProductName,
			Region:       input.Region,
			Price:        input.Price,
			DateRecorded: recorded,
		}
		if result := initializers.DB.Create(&entry); result.Error != nil {
			log.Println("Market price import error:", result.Error)
			skipped++
			continue
		}
		imported++
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  "Market data import finished.",
		"imported": imported,
		"skipped":  skipped,
	})
}
