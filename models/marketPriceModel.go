package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MarketPrice is a historical price record. It intentionally has no foreign
// key to Product: the ledger tracks regional market data as free text, so a
// record may name a product that no farmer currently lists.
type MarketPrice struct {
	gorm.Model
	ProductName  string         `json:"productName" gorm:"size:100"`
	Region       string         `json:"region" gorm:"size:100"`
	Price        float64        `json:"price"`
	DateRecorded datatypes.Date `json:"dateRecorded"`
}
