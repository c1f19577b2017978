package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vtc-pricing-service/internal/invoice"
	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/pricing"
)

// SettingsStore loads and saves tenant pricing configuration.
type SettingsStore interface {
	Load(ctx context.Context, orgID uuid.UUID) (*model.OrganizationSettings, error)
	SavePricingSettings(ctx context.Context, settings *model.OrganizationPricingSettings) error
}

type PricingService struct {
	settings SettingsStore
	engine   *pricing.Engine
	log      zerolog.Logger
}

func NewPricingService(settings SettingsStore, engine *pricing.Engine, log zerolog.Logger) *PricingService {
	return &PricingService{
		settings: settings,
		engine:   engine,
		log:      log,
	}
}

func (s *PricingService) Quote(ctx context.Context, principal model.Principal, trip model.TripInput) (*model.PricingResult, error) {
	if !principal.CanQuote() {
		return nil, ErrPermissionDenied
	}

	settings, err := s.settings.Load(ctx, principal.OrgID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	result, err := s.engine.PriceTrip(ctx, trip, settings)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) || errors.Is(err, pricing.ErrUnknownCategory) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		return nil, err
	}

	s.log.Info().
		Str("org_id", principal.OrgID.String()).
		Str("trip_type", string(trip.TripType)).
		Float64("price", result.Price).
		Str("fuel_source", string(result.FuelPrice.Source)).
		Msg("quote computed")
	return result, nil
}

type InvoiceRequest struct {
	FinalPrice  float64        `json:"final_price"`
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	Extras      invoice.Extras `json:"extras"`
}

type InvoiceDraft struct {
	Lines  []model.InvoiceLine `json:"lines"`
	Totals model.InvoiceTotals `json:"totals"`
}

func (s *PricingService) BuildInvoice(principal model.Principal, req InvoiceRequest) (*InvoiceDraft, error) {
	if !principal.CanQuote() {
		return nil, ErrPermissionDenied
	}
	if req.FinalPrice < 0 {
		return nil, fmt.Errorf("%w: negative final price", ErrInvalidInput)
	}
	for _, fee := range req.Extras.OptionalFees {
		if fee.Amount < 0 {
			return nil, fmt.Errorf("%w: negative fee %q", ErrInvalidInput, fee.Name)
		}
	}
	for _, promo := range req.Extras.Promotions {
		if promo.DiscountAmount < 0 {
			return nil, fmt.Errorf("%w: promotion %q must carry a positive discount", ErrInvalidInput, promo.Code)
		}
	}

	lines := invoice.BuildInvoiceLines(req.FinalPrice, req.Origin, req.Destination, req.Extras)
	return &InvoiceDraft{Lines: lines, Totals: invoice.CalculateInvoiceTotals(lines)}, nil
}

type UpdatePricingSettingsInput struct {
	Timezone                  *string                        `json:"timezone"`
	BaseLat                   *float64                       `json:"base_lat"`
	BaseLng                   *float64                       `json:"base_lng"`
	BaseAddress               *string                        `json:"base_address"`
	BaseRatePerKm             *float64                       `json:"base_rate_per_km"`
	BaseRatePerHour           *float64                       `json:"base_rate_per_hour"`
	MinimumFare               *float64                       `json:"minimum_fare"`
	FuelConsumptionL100km     *float64                       `json:"fuel_consumption_l_100km"`
	FuelType                  *model.FuelType                `json:"fuel_type"`
	FuelCountryCode           *string                        `json:"fuel_country_code"`
	TollCostPerKm             *float64                       `json:"toll_cost_per_km"`
	WearCostPerKm             *float64                       `json:"wear_cost_per_km"`
	DriverHourlyCost          *float64                       `json:"driver_hourly_cost"`
	DispoHourlyRate           *float64                       `json:"dispo_hourly_rate"`
	DispoIncludedKmPerHour    *float64                       `json:"dispo_included_km_per_hour"`
	DispoOverageRatePerKm     *float64                       `json:"dispo_overage_rate_per_km"`
	AvailabilityIncludedHours *float64                       `json:"availability_included_hours"`
	HotelCostPerNight         *float64                       `json:"hotel_cost_per_night"`
	MealCostPerDay            *float64                       `json:"meal_cost_per_day"`
	StaffingSelectionPolicy   *model.StaffingSelectionPolicy `json:"staffing_selection_policy"`
	DifficultyMultipliers     map[int]float64                `json:"difficulty_multipliers"`
}

// UpdatePricingSettings patches the tenant rate table. Only admins may change it.
func (s *PricingService) UpdatePricingSettings(ctx context.Context, principal model.Principal, input UpdatePricingSettingsInput) (*model.OrganizationPricingSettings, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	current, err := s.settings.Load(ctx, principal.OrgID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	p := current.Pricing

	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, *input.Timezone)
		}
		p.Timezone = *input.Timezone
	}
	if input.BaseAddress != nil {
		p.BaseAddress = strings.TrimSpace(*input.BaseAddress)
	}
	if input.FuelType != nil {
		switch *input.FuelType {
		case model.FuelTypeDiesel, model.FuelTypeGasoline, model.FuelTypeLPG:
			p.FuelType = *input.FuelType
		default:
			return nil, fmt.Errorf("%w: unknown fuel type %q", ErrInvalidInput, *input.FuelType)
		}
	}
	if input.FuelCountryCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.FuelCountryCode))
		if len(code) != 2 {
			return nil, fmt.Errorf("%w: fuel country code must have two letters", ErrInvalidInput)
		}
		p.FuelCountryCode = code
	}
	if input.StaffingSelectionPolicy != nil {
		switch *input.StaffingSelectionPolicy {
		case model.PolicyCheapest, model.PolicyFastest, model.PolicyPreferInternal:
			p.StaffingSelectionPolicy = *input.StaffingSelectionPolicy
		default:
			return nil, fmt.Errorf("%w: unknown staffing policy %q", ErrInvalidInput, *input.StaffingSelectionPolicy)
		}
	}
	if input.DifficultyMultipliers != nil {
		for score, m := range input.DifficultyMultipliers {
			if score < 1 || score > 5 || m <= 0 {
				return nil, fmt.Errorf("%w: difficulty multiplier %d=%.2f", ErrInvalidInput, score, m)
			}
		}
		p.DifficultyMultipliers = input.DifficultyMultipliers
	}
	if input.BaseLat != nil || input.BaseLng != nil {
		base := p.Base()
		if input.BaseLat != nil {
			base.Lat = *input.BaseLat
		}
		if input.BaseLng != nil {
			base.Lng = *input.BaseLng
		}
		if !base.Valid() {
			return nil, fmt.Errorf("%w: base coordinates out of range", ErrInvalidInput)
		}
		p.BaseLat, p.BaseLng = base.Lat, base.Lng
	}

	amounts := []struct {
		name  string
		value *float64
		dst   *float64
	}{
		{"base_rate_per_km", input.BaseRatePerKm, &p.BaseRatePerKm},
		{"base_rate_per_hour", input.BaseRatePerHour, &p.BaseRatePerHour},
		{"minimum_fare", input.MinimumFare, &p.MinimumFare},
		{"fuel_consumption_l_100km", input.FuelConsumptionL100km, &p.FuelConsumptionL100km},
		{"toll_cost_per_km", input.TollCostPerKm, &p.TollCostPerKm},
		{"wear_cost_per_km", input.WearCostPerKm, &p.WearCostPerKm},
		{"driver_hourly_cost", input.DriverHourlyCost, &p.DriverHourlyCost},
		{"dispo_hourly_rate", input.DispoHourlyRate, &p.DispoHourlyRate},
		{"dispo_included_km_per_hour", input.DispoIncludedKmPerHour, &p.DispoIncludedKmPerHour},
		{"dispo_overage_rate_per_km", input.DispoOverageRatePerKm, &p.DispoOverageRatePerKm},
		{"availability_included_hours", input.AvailabilityIncludedHours, &p.AvailabilityIncludedHours},
		{"hotel_cost_per_night", input.HotelCostPerNight, &p.HotelCostPerNight},
		{"meal_cost_per_day", input.MealCostPerDay, &p.MealCostPerDay},
	}
	for _, a := range amounts {
		if a.value == nil {
			continue
		}
		if *a.value < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, a.name)
		}
		*a.dst = *a.value
	}

	p.OrganizationID = principal.OrgID
	if err := s.settings.SavePricingSettings(ctx, &p); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return &p, nil
}
