package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"vtc-pricing-service/internal/model"
)

type FuelPriceRepository struct {
	db *gorm.DB
}

func NewFuelPriceRepository(db *gorm.DB) *FuelPriceRepository {
	return &FuelPriceRepository{db: db}
}

// LatestFuelPrice returns nil, nil when no price was ever recorded.
func (r *FuelPriceRepository) LatestFuelPrice(ctx context.Context, query model.FuelPriceQuery) (*model.FuelPriceCacheEntry, error) {
	var entry model.FuelPriceCacheEntry
	err := r.db.WithContext(ctx).
		Where("country_code = ? AND fuel_type = ?", strings.ToUpper(query.CountryCode), query.FuelType).
		Order("fetched_at DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *FuelPriceRepository) SaveFuelPrice(ctx context.Context, entry *model.FuelPriceCacheEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// History lists the most recent entries for a query, newest first.
func (r *FuelPriceRepository) History(ctx context.Context, query model.FuelPriceQuery, limit int) ([]model.FuelPriceCacheEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	entries := make([]model.FuelPriceCacheEntry, 0)
	err := r.db.WithContext(ctx).
		Where("country_code = ? AND fuel_type = ?", strings.ToUpper(query.CountryCode), query.FuelType).
		Order("fetched_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
