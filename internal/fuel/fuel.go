// Package fuel resolves fuel prices cache-first with a static default, so a
// pricing request never fails on missing fuel data.
package fuel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vtc-pricing-service/internal/model"
)

const (
	DefaultCountryCode        = "FR"
	DefaultCurrency           = "EUR"
	DefaultStalenessThreshold = 48 * time.Hour
	DefaultLookupTimeout      = 2 * time.Second
)

// DefaultPrices per litre, used when no cached price is available.
var DefaultPrices = map[model.FuelType]float64{
	model.FuelTypeDiesel:   1.80,
	model.FuelTypeGasoline: 1.90,
	model.FuelTypeLPG:      1.00,
}

var ErrInvalidPrice = errors.New("invalid fuel price")

// Store returns the most recent cache entry for a query, or nil when there is none.
type Store interface {
	LatestFuelPrice(ctx context.Context, query model.FuelPriceQuery) (*model.FuelPriceCacheEntry, error)
	SaveFuelPrice(ctx context.Context, entry *model.FuelPriceCacheEntry) error
}

type Options struct {
	CountryCode        string
	StalenessThreshold time.Duration
	LookupTimeout      time.Duration
}

type Service struct {
	store Store
	log   zerolog.Logger
	opts  Options
	now   func() time.Time
}

// NewService builds the fuel price source. store may be nil, every lookup
// then resolves to the default price table.
func NewService(store Store, log zerolog.Logger, opts Options) *Service {
	if opts.CountryCode == "" {
		opts.CountryCode = DefaultCountryCode
	}
	if opts.StalenessThreshold <= 0 {
		opts.StalenessThreshold = DefaultStalenessThreshold
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = DefaultLookupTimeout
	}
	return &Service{
		store: store,
		log:   log.With().Str("component", "fuel").Logger(),
		opts:  opts,
		now:   time.Now,
	}
}

// GetFuelPrice never fails: a miss, a lookup error or a timeout yields the default price.
func (s *Service) GetFuelPrice(ctx context.Context, query model.FuelPriceQuery) model.FuelPriceResult {
	query = s.Normalize(query)
	if s.store == nil {
		return defaultPrice(query)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.opts.LookupTimeout)
	defer cancel()

	entry, err := s.store.LatestFuelPrice(lookupCtx, query)
	if err != nil {
		s.log.Warn().Err(err).
			Str("country", query.CountryCode).
			Str("fuel_type", string(query.FuelType)).
			Msg("fuel price lookup failed, using default")
		return defaultPrice(query)
	}
	if entry == nil {
		s.log.Debug().
			Str("country", query.CountryCode).
			Str("fuel_type", string(query.FuelType)).
			Msg("no cached fuel price, using default")
		return defaultPrice(query)
	}

	fetchedAt := entry.FetchedAt
	currency := entry.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return model.FuelPriceResult{
		PricePerLitre: entry.PricePerLitre,
		Currency:      currency,
		Source:        model.FuelPriceSourceCache,
		FetchedAt:     &fetchedAt,
		IsStale:       s.now().Sub(fetchedAt) > s.opts.StalenessThreshold,
		CountryCode:   query.CountryCode,
		FuelType:      query.FuelType,
	}
}

// RecordFuelPrice stores a freshly observed price.
func (s *Service) RecordFuelPrice(ctx context.Context, entry model.FuelPriceCacheEntry) (*model.FuelPriceCacheEntry, error) {
	if s.store == nil {
		return nil, errors.New("record fuel price: no store configured")
	}
	if entry.PricePerLitre <= 0 {
		return nil, fmt.Errorf("record fuel price: %.3f per litre: %w", entry.PricePerLitre, ErrInvalidPrice)
	}
	if _, ok := DefaultPrices[entry.FuelType]; !ok {
		return nil, fmt.Errorf("record fuel price: unknown fuel type %q: %w", entry.FuelType, ErrInvalidPrice)
	}

	q := s.Normalize(model.FuelPriceQuery{CountryCode: entry.CountryCode, FuelType: entry.FuelType})
	entry.CountryCode = q.CountryCode
	if entry.Currency == "" {
		entry.Currency = DefaultCurrency
	}
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = s.now()
	}

	if err := s.store.SaveFuelPrice(ctx, &entry); err != nil {
		return nil, fmt.Errorf("record fuel price: %w", err)
	}
	return &entry, nil
}

// Normalize fills the default country and fuel type of a lookup.
func (s *Service) Normalize(q model.FuelPriceQuery) model.FuelPriceQuery {
	q.CountryCode = strings.ToUpper(strings.TrimSpace(q.CountryCode))
	if q.CountryCode == "" {
		q.CountryCode = s.opts.CountryCode
	}
	if q.FuelType == "" {
		q.FuelType = model.FuelTypeDiesel
	}
	return q
}

func defaultPrice(q model.FuelPriceQuery) model.FuelPriceResult {
	price, ok := DefaultPrices[q.FuelType]
	if !ok {
		price = DefaultPrices[model.FuelTypeDiesel]
	}
	return model.FuelPriceResult{
		PricePerLitre: price,
		Currency:      DefaultCurrency,
		Source:        model.FuelPriceSourceDefault,
		CountryCode:   q.CountryCode,
		FuelType:      q.FuelType,
	}
}
