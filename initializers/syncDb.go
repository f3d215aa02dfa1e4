package initializers

import (
	"log"

	"github.com/agrisoko/agrisoko-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.MarketPrice{})
	log.Println("Database synced successfully.")
}
