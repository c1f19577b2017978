package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"vtc-pricing-service/internal/compliance"
	"vtc-pricing-service/internal/geo"
	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
	"vtc-pricing-service/internal/multiplier"
	"vtc-pricing-service/internal/routing"
	"vtc-pricing-service/internal/zones"
)

// FuelPriceSource never fails; a missing price resolves to a default.
type FuelPriceSource interface {
	GetFuelPrice(ctx context.Context, query model.FuelPriceQuery) model.FuelPriceResult
}

// Engine orchestrates the pricing of one trip. It holds no per-request state
// and is safe for concurrent use.
type Engine struct {
	fuel          FuelPriceSource
	router        routing.Router
	estimator     routing.HaversineEstimator
	defaultPolicy model.StaffingSelectionPolicy
	log           zerolog.Logger
}

// NewEngine wires the engine. fuel must not be nil; a nil router means
// haversine estimates only.
func NewEngine(fuel FuelPriceSource, router routing.Router, defaultPolicy model.StaffingSelectionPolicy, log zerolog.Logger) *Engine {
	estimator := routing.NewHaversineEstimator()
	if router == nil {
		router = estimator
	}
	return &Engine{
		fuel:          fuel,
		router:        router,
		estimator:     estimator,
		defaultPolicy: compliance.NormalizePolicy(defaultPolicy),
		log:           log.With().Str("component", "pricing").Logger(),
	}
}

// PriceTrip prices trip for the organization described by settings.
func (e *Engine) PriceTrip(ctx context.Context, trip model.TripInput, settings *model.OrganizationSettings) (*model.PricingResult, error) {
	if settings == nil {
		return nil, fmt.Errorf("price trip: missing organization settings: %w", ErrInvalidInput)
	}
	if err := ValidateTrip(trip); err != nil {
		return nil, err
	}

	category, err := resolveCategory(trip, settings)
	if err != nil {
		return nil, err
	}
	regulatory := model.RegulatoryCategoryLight
	if category != nil && category.RegulatoryCategory != "" {
		regulatory = category.RegulatoryCategory
	}

	var (
		fuelPrice    model.FuelPriceResult
		legs         ResolvedLegs
		segmentation model.SegmentationResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fuelPrice = e.fuelPrice(gctx, settings.Pricing)
		return nil
	})
	g.Go(func() error {
		var err error
		legs, err = e.resolveLegs(gctx, trip, settings.Pricing)
		if err != nil {
			return err
		}
		segmentation, err = segmentService(trip, legs.Service, settings.Zones)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	params := costParameters(settings.Pricing, category, fuelPrice)
	analysis, err := ComputeTripAnalysis(legs, params)
	if err != nil {
		return nil, fmt.Errorf("price trip: %w", err)
	}
	analysis.ZoneSegmentation = &segmentation
	analysis.PositioningCosts = ComputePositioningCosts(analysis, trip, settings.Pricing)

	base, err := ComputeBasePrice(trip, analysis.Segments.Service, settings)
	if err != nil {
		return nil, fmt.Errorf("price trip: %w", err)
	}
	price := base.Price
	rules := base.AppliedRules

	price, rules = apply(price, rules, multiplier.ApplyVehicleCategoryMultiplier(price, category))
	price, rules = apply(price, rules, multiplier.ApplyZoneMultiplier(price, segmentation))
	price, rules = apply(price, rules, multiplier.ApplyZoneSurcharges(price, segmentation))

	chain := multiplier.ApplyTimeBasedAdjustments(price, trip.PickupAt, settings.Pricing.Location(), settings.SeasonalMultipliers, settings.AdvancedRates)
	price = chain.AdjustedPrice
	rules = model.AppendRules(rules, chain.AppliedRules...)

	score, source := multiplier.ResolveDifficultyScore(trip.EndCustomerDifficultyScore, trip.ContactDifficultyScore)
	price, rules = apply(price, rules, multiplier.ApplyClientDifficultyMultiplier(price, score, settings.Pricing.DifficultyMultipliers))

	licence := ""
	if category != nil {
		licence = category.LicenseCategory
	}
	integration := IntegrateComplianceIntoPricing(analysis, price, rules, ComplianceContext{
		RegulatoryCategory: regulatory,
		Rules:              settings.RulesFor(licence),
		StaffingCosts:      settings.Pricing.StaffingCosts(),
		Policy:             e.policy(trip, settings.Pricing),
		Trip:               trip,
	})
	analysis = integration.Analysis
	if plan := analysis.CompliancePlan; plan != nil && plan.IsRequired && plan.PlanType == nil {
		e.log.Warn().Str("reason", plan.Reason).Msg("no staffing plan can make the trip compliant")
	}

	fees, err := ApplyOptionalFees(integration.Price, settings.OptionalFees, trip.OptionalFeeIDs, integration.AppliedRules)
	if err != nil {
		return nil, fmt.Errorf("price trip: %w", err)
	}
	promos, err := ApplyPromotions(fees.Price, settings.Promotions, trip.PromotionCodes, fees.AppliedRules)
	if err != nil {
		return nil, fmt.Errorf("price trip: %w", err)
	}

	internal := money.Round2(analysis.TotalInternalCost +
		analysis.PositioningCosts.AvailabilityFee.Cost +
		integration.AdditionalStaffingCost)
	final := promos.Price
	margin := money.Round2(final - internal)
	marginPercent := 0.0
	if final > 0 {
		marginPercent = money.Round2(margin / final * 100)
	}

	e.log.Debug().
		Str("trip_type", string(trip.TripType)).
		Str("routing_source", string(analysis.RoutingSource)).
		Float64("price", final).
		Float64("internal_cost", internal).
		Int("applied_rules", len(promos.AppliedRules)).
		Msg("trip priced")

	return &model.PricingResult{
		Price:                  final,
		BasePrice:              base.Price,
		InternalCost:           internal,
		Margin:                 margin,
		MarginPercent:          marginPercent,
		RegulatoryCategory:     regulatory,
		AdditionalStaffingCost: integration.AdditionalStaffingCost,
		AppliedRules:           promos.AppliedRules,
		OptionalFees:           fees.Fees,
		Promotions:             promos.Promotions,
		DifficultyScore:        score,
		DifficultySource:       source,
		FuelPrice:              fuelPrice,
		TripAnalysis:           analysis,
	}, nil
}

// ValidateTrip rejects input the engine cannot price.
func ValidateTrip(trip model.TripInput) error {
	switch trip.TripType {
	case model.TripTypeTransfer, model.TripTypeDispo, model.TripTypeExcursion:
	default:
		return fmt.Errorf("trip type %q: %w", trip.TripType, ErrInvalidInput)
	}
	if trip.PickupAt.IsZero() {
		return fmt.Errorf("missing pickup time: %w", ErrInvalidInput)
	}
	if !trip.Pickup.Valid() || !trip.Dropoff.Valid() {
		return fmt.Errorf("pickup or dropoff coordinates out of range: %w", ErrInvalidInput)
	}
	if trip.EstimatedDropoffAt != nil && trip.EstimatedDropoffAt.Before(trip.PickupAt) {
		return fmt.Errorf("estimated dropoff before pickup: %w", ErrInvalidInput)
	}
	if trip.ServiceDistanceKm != nil && *trip.ServiceDistanceKm < 0 {
		return fmt.Errorf("negative service distance: %w", ErrInvalidInput)
	}
	if trip.ServiceDurationMinutes != nil && *trip.ServiceDurationMinutes < 0 {
		return fmt.Errorf("negative service duration: %w", ErrInvalidInput)
	}
	if trip.DispoHours < 0 {
		return fmt.Errorf("negative dispo hours: %w", ErrInvalidInput)
	}
	return nil
}

func resolveCategory(trip model.TripInput, settings *model.OrganizationSettings) (*model.VehicleCategory, error) {
	if trip.VehicleCategoryID == nil {
		return nil, nil
	}
	category, ok := settings.VehicleCategory(*trip.VehicleCategoryID)
	if !ok {
		return nil, fmt.Errorf("vehicle category %s: %w", *trip.VehicleCategoryID, ErrUnknownCategory)
	}
	return &category, nil
}

func (e *Engine) fuelPrice(ctx context.Context, p model.OrganizationPricingSettings) model.FuelPriceResult {
	return e.fuel.GetFuelPrice(ctx, model.FuelPriceQuery{CountryCode: p.FuelCountryCode, FuelType: p.FuelType})
}

// resolveLegs routes the service leg and the deadhead legs from and to the
// base. A caller supplied service distance is trusted as routed.
func (e *Engine) resolveLegs(ctx context.Context, trip model.TripInput, p model.OrganizationPricingSettings) (ResolvedLegs, error) {
	var legs ResolvedLegs

	if trip.ServiceDistanceKm != nil {
		legs.Service = model.RouteLeg{
			DistanceKm: *trip.ServiceDistanceKm,
			Polyline:   trip.Polyline,
			Source:     model.RoutingSourceRouted,
		}
		if trip.ServiceDurationMinutes != nil {
			legs.Service.DurationMinutes = *trip.ServiceDurationMinutes
		} else {
			legs.Service.DurationMinutes = money.Round2(*trip.ServiceDistanceKm / e.estimator.AverageSpeedKmh * 60)
			legs.Service.Source = model.RoutingSourceHaversine
		}
	} else {
		leg, err := e.route(ctx, trip.Pickup, trip.Dropoff)
		if err != nil {
			return ResolvedLegs{}, err
		}
		if trip.Polyline != "" {
			leg.Polyline = trip.Polyline
		}
		legs.Service = leg
	}

	if !p.HasBase() {
		return legs, nil
	}
	base := p.Base()
	if geo.HaversineKm(base, trip.Pickup) > AtBaseRadiusKm {
		leg, err := e.route(ctx, base, trip.Pickup)
		if err != nil {
			return ResolvedLegs{}, err
		}
		legs.Approach = &leg
	}
	if geo.HaversineKm(trip.Dropoff, base) > AtBaseRadiusKm {
		leg, err := e.route(ctx, trip.Dropoff, base)
		if err != nil {
			return ResolvedLegs{}, err
		}
		legs.Return = &leg
	}
	return legs, nil
}

func (e *Engine) route(ctx context.Context, origin, destination model.LatLng) (model.RouteLeg, error) {
	leg, err := e.router.Route(ctx, origin, destination)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return model.RouteLeg{}, fmt.Errorf("route %s -> %s: %w", origin, destination, err)
		}
		e.log.Warn().Err(err).Msg("router failed, using haversine estimate")
		return e.estimator.Estimate(origin, destination), nil
	}
	return leg, nil
}

// segmentService splits the service leg across pricing zones. A malformed
// caller polyline is an input error; without a polyline the pickup and
// dropoff zones are used.
func segmentService(trip model.TripInput, service model.RouteLeg, zoneList []model.PricingZone) (model.SegmentationResult, error) {
	if service.Polyline != "" {
		res, err := zones.SegmentRouteByZones(service.Polyline, zoneList, service.DurationMinutes)
		if err == nil {
			return res, nil
		}
		if trip.Polyline != "" {
			return model.SegmentationResult{}, fmt.Errorf("segment route: %w: %w", ErrInvalidInput, err)
		}
	}
	return zones.CreateFallbackSegmentation(trip.Pickup, trip.Dropoff, zoneList, service.DistanceKm, service.DurationMinutes), nil
}

func costParameters(p model.OrganizationPricingSettings, category *model.VehicleCategory, fuel model.FuelPriceResult) model.CostParameters {
	consumption := p.FuelConsumptionL100km
	if category != nil && category.FuelConsumptionL100km != nil {
		consumption = *category.FuelConsumptionL100km
	}
	return model.CostParameters{
		FuelConsumptionL100km: consumption,
		FuelPricePerLiter:     fuel.PricePerLitre,
		FuelType:              p.FuelType,
		TollCostPerKm:         p.TollCostPerKm,
		WearCostPerKm:         p.WearCostPerKm,
		DriverHourlyCost:      p.DriverHourlyCost,
	}
}

func (e *Engine) policy(trip model.TripInput, p model.OrganizationPricingSettings) model.StaffingSelectionPolicy {
	if trip.StaffingPolicy != "" {
		return compliance.NormalizePolicy(trip.StaffingPolicy)
	}
	if p.StaffingSelectionPolicy != "" {
		return compliance.NormalizePolicy(p.StaffingSelectionPolicy)
	}
	return e.defaultPolicy
}

func apply(price float64, rules []model.AppliedRule, res multiplier.Result) (float64, []model.AppliedRule) {
	if res.AppliedRule == nil {
		return price, rules
	}
	return res.AdjustedPrice, model.AppendRules(rules, *res.AppliedRule)
}
