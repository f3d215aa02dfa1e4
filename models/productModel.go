package models

import "gorm.io/gorm"

const (
	CategoryGrains     = "grains"
	CategoryFruits     = "fruits"
	CategoryVegetables = "vegetables"
	CategoryLivestock  = "livestock"
)

type Product struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
	ImageUrl    string  `json:"imageUrl"`
	FarmerID    uint    `json:"farmerId"`
	Farmer      User    `json:"farmer,omitempty" gorm:"foreignKey:FarmerID;constraint:OnDelete:CASCADE"`
	Location    string  `json:"location"`
}

// IsValidCategory reports whether category is one of the known product categories.
func IsValidCategory(category string) bool {
	switch category {
	case CategoryGrains, CategoryFruits, CategoryVegetables, CategoryLivestock:
		return true
	}
	return false
}
