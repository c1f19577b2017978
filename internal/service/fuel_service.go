package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vtc-pricing-service/internal/fuel"
	"vtc-pricing-service/internal/model"
)

type FuelHistory interface {
	History(ctx context.Context, query model.FuelPriceQuery, limit int) ([]model.FuelPriceCacheEntry, error)
}

type FuelPriceService struct {
	prices  *fuel.Service
	history FuelHistory
}

func NewFuelPriceService(prices *fuel.Service, history FuelHistory) *FuelPriceService {
	return &FuelPriceService{prices: prices, history: history}
}

// Current resolves the price the pricing engine would use right now.
func (s *FuelPriceService) Current(ctx context.Context, query model.FuelPriceQuery) model.FuelPriceResult {
	return s.prices.GetFuelPrice(ctx, query)
}

func (s *FuelPriceService) History(ctx context.Context, principal model.Principal, query model.FuelPriceQuery, limit int) ([]model.FuelPriceCacheEntry, error) {
	if !principal.CanQuote() {
		return nil, ErrPermissionDenied
	}
	if s.history == nil {
		return nil, ErrUnavailable
	}
	return s.history.History(ctx, s.prices.Normalize(query), limit)
}

type RecordFuelPriceInput struct {
	CountryCode   string         `json:"country_code"`
	FuelType      model.FuelType `json:"fuel_type"`
	PricePerLitre float64        `json:"price_per_litre"`
	Currency      string         `json:"currency"`
	Source        string         `json:"source"`
	FetchedAt     *time.Time     `json:"fetched_at"`
}

func (s *FuelPriceService) Record(ctx context.Context, principal model.Principal, input RecordFuelPriceInput) (*model.FuelPriceCacheEntry, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	entry := model.FuelPriceCacheEntry{
		CountryCode:   input.CountryCode,
		FuelType:      input.FuelType,
		PricePerLitre: input.PricePerLitre,
		Currency:      input.Currency,
		Source:        input.Source,
	}
	if input.FetchedAt != nil {
		entry.FetchedAt = *input.FetchedAt
	}

	saved, err := s.prices.RecordFuelPrice(ctx, entry)
	if err != nil {
		if errors.Is(err, fuel.ErrInvalidPrice) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		return nil, err
	}
	return saved, nil
}
