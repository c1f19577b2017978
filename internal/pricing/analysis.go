package pricing

import (
	"fmt"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// ResolvedLegs is the routed geometry of a trip. Approach and Return are nil
// when the vehicle does not need to drive them.
type ResolvedLegs struct {
	Approach *model.RouteLeg
	Service  model.RouteLeg
	Return   *model.RouteLeg
}

// ComputeTripAnalysis costs every leg with the cost model. Parking only
// applies to the service segment.
func ComputeTripAnalysis(legs ResolvedLegs, params model.CostParameters) (model.TripAnalysis, error) {
	deadhead := params
	deadhead.ParkingCost = 0
	deadhead.ParkingDescription = ""

	service, err := buildSegment(model.SegmentService, legs.Service, params)
	if err != nil {
		return model.TripAnalysis{}, err
	}
	segments := model.Segments{Service: service}

	if legs.Approach != nil {
		approach, err := buildSegment(model.SegmentApproach, *legs.Approach, deadhead)
		if err != nil {
			return model.TripAnalysis{}, err
		}
		segments.Approach = &approach
	}
	if legs.Return != nil {
		ret, err := buildSegment(model.SegmentReturn, *legs.Return, deadhead)
		if err != nil {
			return model.TripAnalysis{}, err
		}
		segments.Return = &ret
	}

	present := segments.Present()
	costs := make([]model.CostBreakdown, 0, len(present))
	var distance, duration, internal float64
	source := model.RoutingSourceRouted
	for _, s := range present {
		costs = append(costs, s.Cost)
		distance += s.DistanceKm
		duration += s.DurationMinutes
		internal += s.Cost.Total
		if s.IsEstimated {
			source = model.RoutingSourceHaversine
		}
	}

	return model.TripAnalysis{
		Segments:             segments,
		CostBreakdown:        AggregateCosts(costs...),
		TotalDistanceKm:      money.Round2(distance),
		TotalDurationMinutes: money.Round2(duration),
		TotalInternalCost:    money.Round2(internal),
		RoutingSource:        source,
	}, nil
}

func buildSegment(name model.SegmentName, leg model.RouteLeg, params model.CostParameters) (model.Segment, error) {
	cost, err := ComputeCost(leg.DistanceKm, leg.DurationMinutes, params)
	if err != nil {
		return model.Segment{}, fmt.Errorf("%s segment: %w", name, err)
	}
	return model.Segment{
		Name:            name,
		DistanceKm:      leg.DistanceKm,
		DurationMinutes: leg.DurationMinutes,
		Cost:            cost,
		IsEstimated:     leg.IsEstimated(),
	}, nil
}
