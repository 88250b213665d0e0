package models

import (
	"time"
)

// Item represents a tradeable item in the shared catalog
type Item struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Price     int       `json:"price" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceHistory records the catalog price of an item after each drift cycle
type PriceHistory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ItemID     string    `json:"item_id" gorm:"index;not null"`
	Price      int       `json:"price"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ItemDefinition is one entry of the external item-definition source
type ItemDefinition struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}
