package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtc-pricing-service/internal/fuel"
	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/pricing"
)

type memorySettings struct {
	settings map[uuid.UUID]*model.OrganizationSettings
	saved    []model.OrganizationPricingSettings
}

func newMemorySettings() *memorySettings {
	return &memorySettings{settings: map[uuid.UUID]*model.OrganizationSettings{}}
}

func (m *memorySettings) Load(_ context.Context, orgID uuid.UUID) (*model.OrganizationSettings, error) {
	if s, ok := m.settings[orgID]; ok {
		return s, nil
	}
	return &model.OrganizationSettings{Pricing: model.DefaultPricingSettings(orgID)}, nil
}

func (m *memorySettings) SavePricingSettings(_ context.Context, s *model.OrganizationPricingSettings) error {
	m.saved = append(m.saved, *s)
	return nil
}

var (
	org        = uuid.New()
	admin      = model.Principal{UserID: uuid.New(), OrgID: org, Role: model.UserRoleAdmin}
	sales      = model.Principal{UserID: uuid.New(), OrgID: org, Role: model.UserRoleSales}
	driver     = model.Principal{UserID: uuid.New(), OrgID: org, Role: model.UserRoleDriver}
	cachedFuel = staticFuel{}
)

type staticFuel struct{}

func (staticFuel) GetFuelPrice(_ context.Context, q model.FuelPriceQuery) model.FuelPriceResult {
	return model.FuelPriceResult{PricePerLitre: 1.8, Currency: "EUR", Source: model.FuelPriceSourceDefault, CountryCode: q.CountryCode, FuelType: q.FuelType}
}

func newPricingService(store SettingsStore) *PricingService {
	engine := pricing.NewEngine(cachedFuel, nil, model.PolicyCheapest, zerolog.Nop())
	return NewPricingService(store, engine, zerolog.Nop())
}

func quoteInput() model.TripInput {
	km, minutes := 30.0, 40.0
	return model.TripInput{
		TripType:               model.TripTypeTransfer,
		Pickup:                 model.LatLng{Lat: 48.8566, Lng: 2.3522},
		Dropoff:                model.LatLng{Lat: 48.7262, Lng: 2.3652},
		PickupAt:               time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		ServiceDistanceKm:      &km,
		ServiceDurationMinutes: &minutes,
	}
}

func TestQuotePermissions(t *testing.T) {
	svc := newPricingService(newMemorySettings())

	_, err := svc.Quote(context.Background(), driver, quoteInput())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	res, err := svc.Quote(context.Background(), sales, quoteInput())
	require.NoError(t, err)
	assert.Equal(t, 54.0, res.Price)
}

func TestQuoteMapsEngineErrors(t *testing.T) {
	svc := newPricingService(newMemorySettings())

	trip := quoteInput()
	trip.TripType = "SHUTTLE"
	_, err := svc.Quote(context.Background(), sales, trip)
	assert.ErrorIs(t, err, ErrInvalidInput)

	trip = quoteInput()
	unknown := uuid.New()
	trip.VehicleCategoryID = &unknown
	_, err = svc.Quote(context.Background(), sales, trip)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePricingSettings(t *testing.T) {
	store := newMemorySettings()
	svc := newPricingService(store)

	rate := 2.1
	policy := model.PolicyFastest
	_, err := svc.UpdatePricingSettings(context.Background(), sales, UpdatePricingSettingsInput{BaseRatePerKm: &rate})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.UpdatePricingSettings(context.Background(), admin, UpdatePricingSettingsInput{
		BaseRatePerKm:           &rate,
		StaffingSelectionPolicy: &policy,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.1, updated.BaseRatePerKm)
	assert.Equal(t, model.PolicyFastest, updated.StaffingSelectionPolicy)
	assert.Equal(t, 45.0, updated.BaseRatePerHour)
	require.Len(t, store.saved, 1)

	negative := -1.0
	_, err = svc.UpdatePricingSettings(context.Background(), admin, UpdatePricingSettingsInput{MinimumFare: &negative})
	assert.ErrorIs(t, err, ErrInvalidInput)

	tz := "Mars/Olympus"
	_, err = svc.UpdatePricingSettings(context.Background(), admin, UpdatePricingSettingsInput{Timezone: &tz})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildInvoice(t *testing.T) {
	svc := newPricingService(newMemorySettings())

	draft, err := svc.BuildInvoice(sales, InvoiceRequest{FinalPrice: 150, Origin: "Paris", Destination: "Orly"})
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceTotals{TotalExclVat: 150, TotalVat: 15, TotalInclVat: 165}, draft.Totals)

	_, err = svc.BuildInvoice(driver, InvoiceRequest{FinalPrice: 150})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestComplianceAlternatives(t *testing.T) {
	store := newMemorySettings()
	coach := model.VehicleCategory{ID: uuid.New(), RegulatoryCategory: model.RegulatoryCategoryHeavy, LicenseCategory: "D", PriceMultiplier: 1}
	store.settings[org] = &model.OrganizationSettings{
		Pricing:           model.DefaultPricingSettings(org),
		VehicleCategories: []model.VehicleCategory{coach},
	}
	svc := NewComplianceService(store)

	req := ComplianceRequest{
		VehicleCategoryID: &coach.ID,
		Segments:          []model.Segment{{Name: model.SegmentService, DistanceKm: 800, DurationMinutes: 660}},
		PickupAt:          time.Date(2026, 3, 4, 6, 0, 0, 0, time.UTC),
	}

	res, err := svc.Alternatives(context.Background(), sales, req)
	require.NoError(t, err)
	assert.False(t, res.Validation.IsCompliant)
	assert.True(t, res.Alternatives.HasAlternatives)
	require.NotNil(t, res.Selection.SelectedPlan)
	assert.Equal(t, model.AlternativeMultiDay, res.Selection.SelectedPlan.Type)
	assert.Equal(t, 1, res.Selection.SelectedPlan.AdjustedSchedule.DaysRequired)

	req.VehicleCategoryID = nil
	req.RegulatoryCategory = model.RegulatoryCategoryLight
	validation, err := svc.Validate(context.Background(), sales, req)
	require.NoError(t, err)
	assert.True(t, validation.IsCompliant)
	assert.Nil(t, validation.RulesUsed)

	_, err = svc.Validate(context.Background(), driver, req)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	req.Segments = nil
	_, err = svc.Validate(context.Background(), sales, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type memoryFuelStore struct {
	entries []model.FuelPriceCacheEntry
}

func (m *memoryFuelStore) LatestFuelPrice(context.Context, model.FuelPriceQuery) (*model.FuelPriceCacheEntry, error) {
	if len(m.entries) == 0 {
		return nil, nil
	}
	e := m.entries[len(m.entries)-1]
	return &e, nil
}

func (m *memoryFuelStore) SaveFuelPrice(_ context.Context, e *model.FuelPriceCacheEntry) error {
	m.entries = append(m.entries, *e)
	return nil
}

func TestRecordFuelPrice(t *testing.T) {
	store := &memoryFuelStore{}
	svc := NewFuelPriceService(fuel.NewService(store, zerolog.Nop(), fuel.Options{}), nil)

	_, err := svc.Record(context.Background(), sales, RecordFuelPriceInput{FuelType: model.FuelTypeDiesel, PricePerLitre: 1.7})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Record(context.Background(), admin, RecordFuelPriceInput{FuelType: model.FuelTypeDiesel})
	assert.ErrorIs(t, err, ErrInvalidInput)

	saved, err := svc.Record(context.Background(), admin, RecordFuelPriceInput{FuelType: model.FuelTypeDiesel, PricePerLitre: 1.7})
	require.NoError(t, err)
	assert.Equal(t, "FR", saved.CountryCode)

	current := svc.Current(context.Background(), model.FuelPriceQuery{FuelType: model.FuelTypeDiesel})
	assert.Equal(t, model.FuelPriceSourceCache, current.Source)
	assert.Equal(t, 1.7, current.PricePerLitre)

	_, err = svc.History(context.Background(), sales, model.FuelPriceQuery{}, 10)
	assert.ErrorIs(t, err, ErrUnavailable)
}
