package pricing

import (
	"fmt"
	"math"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// AtBaseRadiusKm is the distance under which a pickup or dropoff counts as the base.
const AtBaseRadiusKm = 0.5

// ComputePositioningCosts explains the deadhead legs of an analysis and, for
// DISPO trips, the driver waiting time beyond the included allowance.
func ComputePositioningCosts(analysis model.TripAnalysis, trip model.TripInput, settings model.OrganizationPricingSettings) model.PositioningCosts {
	out := model.PositioningCosts{
		ApproachFee:     deadheadCost(analysis.Segments.Approach, settings, "from the base to the pickup", "Trip starts at the base"),
		EmptyReturn:     deadheadCost(analysis.Segments.Return, settings, "from the dropoff back to the base", "Trip ends at the base"),
		AvailabilityFee: availabilityFee(analysis.Segments.Service, trip, settings),
	}
	out.TotalCost = money.Round2(out.ApproachFee.Cost + out.EmptyReturn.Cost + out.AvailabilityFee.Cost)
	return out
}

func deadheadCost(segment *model.Segment, settings model.OrganizationPricingSettings, route, atBase string) model.PositioningCost {
	if segment == nil {
		reason := atBase
		if !settings.HasBase() {
			reason = "No operating base configured"
		}
		return model.PositioningCost{Reason: reason}
	}
	return model.PositioningCost{
		Required:        true,
		DistanceKm:      segment.DistanceKm,
		DurationMinutes: segment.DurationMinutes,
		Cost:            segment.Cost.Total,
		Reason:          fmt.Sprintf("Empty drive of %.1f km %s", segment.DistanceKm, route),
	}
}

func availabilityFee(service model.Segment, trip model.TripInput, settings model.OrganizationPricingSettings) model.AvailabilityFee {
	fee := model.AvailabilityFee{
		IncludedHours: settings.AvailabilityIncludedHours,
		HourlyRate:    settings.DriverHourlyCost,
	}
	if trip.TripType != model.TripTypeDispo {
		fee.Reason = "Only applies to disposal trips"
		return fee
	}

	fee.WaitingHours = money.Round2(math.Max(0, trip.DispoHours-service.DurationMinutes/60))
	fee.BilledHours = money.Round2(math.Max(0, fee.WaitingHours-fee.IncludedHours))
	if fee.BilledHours == 0 {
		fee.Reason = fmt.Sprintf("Waiting time of %.2fh is within the %.2fh allowance", fee.WaitingHours, fee.IncludedHours)
		return fee
	}

	fee.Required = true
	fee.Cost = money.Round2(fee.BilledHours * fee.HourlyRate)
	fee.Reason = fmt.Sprintf("Driver waits %.2fh, %.2fh beyond the %.2fh allowance", fee.WaitingHours, fee.BilledHours, fee.IncludedHours)
	return fee
}
