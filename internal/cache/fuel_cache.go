// Package cache keeps hot fuel prices in redis in front of the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"vtc-pricing-service/internal/fuel"
	"vtc-pricing-service/internal/model"
)

const DefaultFuelTTL = 6 * time.Hour

const fuelKeyPrefix = "fuel_price"

// FuelPriceCache is a read-through, write-through fuel.Store. Redis failures
// are logged and the underlying store answers instead.
type FuelPriceCache struct {
	client *redis.Client
	next   fuel.Store
	ttl    time.Duration
	log    zerolog.Logger
}

func NewFuelPriceCache(client *redis.Client, next fuel.Store, ttl time.Duration, log zerolog.Logger) *FuelPriceCache {
	if ttl <= 0 {
		ttl = DefaultFuelTTL
	}
	return &FuelPriceCache{
		client: client,
		next:   next,
		ttl:    ttl,
		log:    log.With().Str("component", "fuel_cache").Logger(),
	}
}

func (c *FuelPriceCache) LatestFuelPrice(ctx context.Context, query model.FuelPriceQuery) (*model.FuelPriceCacheEntry, error) {
	key := fuelKey(query)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry model.FuelPriceCacheEntry
		if err := json.Unmarshal(raw, &entry); err == nil {
			return &entry, nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable cached fuel price")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("redis read failed")
	}

	entry, err := c.next.LatestFuelPrice(ctx, query)
	if err != nil || entry == nil {
		return entry, err
	}
	c.store(ctx, key, entry)
	return entry, nil
}

func (c *FuelPriceCache) SaveFuelPrice(ctx context.Context, entry *model.FuelPriceCacheEntry) error {
	if err := c.next.SaveFuelPrice(ctx, entry); err != nil {
		return err
	}
	c.store(ctx, fuelKey(model.FuelPriceQuery{CountryCode: entry.CountryCode, FuelType: entry.FuelType}), entry)
	return nil
}

func (c *FuelPriceCache) store(ctx context.Context, key string, entry *model.FuelPriceCacheEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("encode fuel price")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis write failed")
	}
}

func fuelKey(q model.FuelPriceQuery) string {
	return fmt.Sprintf("%s:%s:%s", fuelKeyPrefix, strings.ToUpper(q.CountryCode), q.FuelType)
}
