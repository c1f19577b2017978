package fuel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtc-pricing-service/internal/model"
)

type fakeStore struct {
	entry *model.FuelPriceCacheEntry
	err   error
	block bool
	saved []model.FuelPriceCacheEntry
	query model.FuelPriceQuery
}

func (f *fakeStore) LatestFuelPrice(ctx context.Context, q model.FuelPriceQuery) (*model.FuelPriceCacheEntry, error) {
	f.query = q
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.entry, f.err
}

func (f *fakeStore) SaveFuelPrice(_ context.Context, e *model.FuelPriceCacheEntry) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *e)
	return nil
}

var fixedNow = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

func newTestService(store Store) *Service {
	svc := NewService(store, zerolog.Nop(), Options{LookupTimeout: 50 * time.Millisecond})
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestGetFuelPriceFromCache(t *testing.T) {
	store := &fakeStore{entry: &model.FuelPriceCacheEntry{
		PricePerLitre: 1.72,
		Currency:      "EUR",
		FetchedAt:     fixedNow.Add(-2 * time.Hour),
	}}

	res := newTestService(store).GetFuelPrice(context.Background(), model.FuelPriceQuery{CountryCode: "fr", FuelType: model.FuelTypeDiesel})

	assert.Equal(t, model.FuelPriceSourceCache, res.Source)
	assert.Equal(t, 1.72, res.PricePerLitre)
	assert.False(t, res.IsStale)
	require.NotNil(t, res.FetchedAt)
	assert.Equal(t, "FR", store.query.CountryCode)
}

func TestGetFuelPriceStaleness(t *testing.T) {
	store := &fakeStore{entry: &model.FuelPriceCacheEntry{PricePerLitre: 1.65, FetchedAt: fixedNow.Add(-49 * time.Hour)}}
	res := newTestService(store).GetFuelPrice(context.Background(), model.FuelPriceQuery{})

	assert.Equal(t, model.FuelPriceSourceCache, res.Source)
	assert.True(t, res.IsStale)
	assert.Equal(t, DefaultCurrency, res.Currency)

	store.entry.FetchedAt = fixedNow.Add(-48 * time.Hour)
	res = newTestService(store).GetFuelPrice(context.Background(), model.FuelPriceQuery{})
	assert.False(t, res.IsStale)
}

func TestGetFuelPriceFallsBackToDefault(t *testing.T) {
	cases := map[string]Store{
		"miss":     &fakeStore{},
		"error":    &fakeStore{err: errors.New("connection refused")},
		"timeout":  &fakeStore{block: true},
		"no store": nil,
	}
	for name, store := range cases {
		t.Run(name, func(t *testing.T) {
			res := newTestService(store).GetFuelPrice(context.Background(), model.FuelPriceQuery{FuelType: model.FuelTypeGasoline})

			assert.Equal(t, model.FuelPriceSourceDefault, res.Source)
			assert.Equal(t, 1.90, res.PricePerLitre)
			assert.Equal(t, "EUR", res.Currency)
			assert.Equal(t, DefaultCountryCode, res.CountryCode)
			assert.Nil(t, res.FetchedAt)
			assert.False(t, res.IsStale)
		})
	}
}

func TestRecordFuelPrice(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	saved, err := svc.RecordFuelPrice(context.Background(), model.FuelPriceCacheEntry{
		CountryCode:   "be",
		FuelType:      model.FuelTypeDiesel,
		PricePerLitre: 1.79,
	})
	require.NoError(t, err)
	assert.Equal(t, "BE", saved.CountryCode)
	assert.Equal(t, fixedNow, saved.FetchedAt)
	require.Len(t, store.saved, 1)

	_, err = svc.RecordFuelPrice(context.Background(), model.FuelPriceCacheEntry{FuelType: model.FuelTypeDiesel})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.RecordFuelPrice(context.Background(), model.FuelPriceCacheEntry{FuelType: "KEROSENE", PricePerLitre: 1})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}
