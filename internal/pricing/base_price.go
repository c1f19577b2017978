package pricing

import (
	"fmt"
	"math"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// BasePrice is the price before any multiplier, with the rules that shaped it.
type BasePrice struct {
	Price        float64
	AppliedRules []model.AppliedRule
}

// ComputeBasePrice prices the service leg according to the trip type.
//
// TRANSFER and EXCURSION bill the greater of the distance and time rates.
// An EXCURSION sold as a temporal vector bills at least the vector duration.
// DISPO bills the booked hours plus the kilometres beyond the included allowance.
// The minimum fare applies to every trip type.
func ComputeBasePrice(trip model.TripInput, service model.Segment, settings *model.OrganizationSettings) (BasePrice, error) {
	p := settings.Pricing
	hours := service.DurationMinutes / 60
	rules := []model.AppliedRule{}

	var price float64
	switch trip.TripType {
	case model.TripTypeTransfer, model.TripTypeExcursion:
		if trip.TripType == model.TripTypeExcursion && trip.TemporalVectorCode != "" {
			vector, ok := settings.TemporalVector(trip.TemporalVectorCode)
			if !ok {
				return BasePrice{}, fmt.Errorf("temporal vector %q: %w", trip.TemporalVectorCode, ErrInvalidInput)
			}
			if vector.MinimumDurationHours > hours {
				before := money.Round2(math.Max(service.DistanceKm*p.BaseRatePerKm, hours*p.BaseRatePerHour))
				hours = vector.MinimumDurationHours
				after := money.Round2(math.Max(service.DistanceKm*p.BaseRatePerKm, hours*p.BaseRatePerHour))
				rules = model.AppendRules(rules, model.AppliedRule{
					Type:        model.RuleTemporalVector,
					RuleID:      vector.ID.String(),
					Description: fmt.Sprintf("%s billed for at least %gh", vector.Name, vector.MinimumDurationHours),
					PriceBefore: before,
					PriceAfter:  after,
				})
			}
		}
		price = money.Round2(math.Max(service.DistanceKm*p.BaseRatePerKm, hours*p.BaseRatePerHour))

	case model.TripTypeDispo:
		if trip.DispoHours <= 0 {
			return BasePrice{}, fmt.Errorf("dispo trip without booked hours: %w", ErrInvalidInput)
		}
		booked := math.Max(trip.DispoHours, hours)
		included := booked * p.DispoIncludedKmPerHour
		overage := math.Max(0, service.DistanceKm-included)
		price = money.Round2(booked*p.DispoHourlyRate + overage*p.DispoOverageRatePerKm)

	default:
		return BasePrice{}, fmt.Errorf("trip type %q: %w", trip.TripType, ErrInvalidInput)
	}

	if p.MinimumFare > price {
		rules = model.AppendRules(rules, model.AppliedRule{
			Type:        model.RuleMinimumFare,
			Description: fmt.Sprintf("Minimum fare of %.2f EUR", p.MinimumFare),
			PriceBefore: price,
			PriceAfter:  p.MinimumFare,
		})
		price = p.MinimumFare
	}

	return BasePrice{Price: price, AppliedRules: rules}, nil
}
