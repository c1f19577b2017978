package model

import (
	"time"

	"github.com/google/uuid"
)

type FuelPriceSource string

const (
	FuelPriceSourceCache   FuelPriceSource = "CACHE"
	FuelPriceSourceDefault FuelPriceSource = "DEFAULT"
)

type FuelPriceCacheEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CountryCode   string    `gorm:"type:varchar(2);not null" json:"country_code"`
	FuelType      FuelType  `gorm:"type:varchar(16);not null" json:"fuel_type"`
	PricePerLitre float64   `gorm:"not null" json:"price_per_litre"`
	Currency      string    `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	Source        string    `gorm:"type:varchar(64)" json:"source"`
	FetchedAt     time.Time `gorm:"not null" json:"fetched_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FuelPriceCacheEntry) TableName() string {
	return "fuel_price_cache"
}

type FuelPriceQuery struct {
	CountryCode string
	FuelType    FuelType
}

// FuelPriceResult carries the price together with where it came from.
type FuelPriceResult struct {
	PricePerLitre float64         `json:"price_per_litre"`
	Currency      string          `json:"currency"`
	Source        FuelPriceSource `json:"source"`
	FetchedAt     *time.Time      `json:"fetched_at"`
	IsStale       bool            `json:"is_stale"`
	CountryCode   string          `json:"country_code"`
	FuelType      FuelType        `json:"fuel_type"`
}
