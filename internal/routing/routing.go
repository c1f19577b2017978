// Package routing resolves driving legs between two points, through Google
// Maps Directions when configured and a haversine estimate otherwise.
package routing

import (
	"context"

	"github.com/rs/zerolog"

	"vtc-pricing-service/internal/geo"
	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

const (
	DefaultRoadFactor      = 1.3
	DefaultAverageSpeedKmh = 50.0
)

type Router interface {
	Route(ctx context.Context, origin, destination model.LatLng) (model.RouteLeg, error)
}

// HaversineEstimator approximates road distance as the great-circle distance
// times a road factor, driven at a constant average speed.
type HaversineEstimator struct {
	RoadFactor      float64
	AverageSpeedKmh float64
}

func NewHaversineEstimator() HaversineEstimator {
	return HaversineEstimator{RoadFactor: DefaultRoadFactor, AverageSpeedKmh: DefaultAverageSpeedKmh}
}

func (e HaversineEstimator) Route(_ context.Context, origin, destination model.LatLng) (model.RouteLeg, error) {
	return e.Estimate(origin, destination), nil
}

func (e HaversineEstimator) Estimate(origin, destination model.LatLng) model.RouteLeg {
	factor := e.RoadFactor
	if factor <= 0 {
		factor = DefaultRoadFactor
	}
	speed := e.AverageSpeedKmh
	if speed <= 0 {
		speed = DefaultAverageSpeedKmh
	}

	distance := geo.HaversineKm(origin, destination) * factor
	return model.RouteLeg{
		DistanceKm:      money.Round2(distance),
		DurationMinutes: money.Round2(distance / speed * 60),
		Source:          model.RoutingSourceHaversine,
	}
}

// FallbackRouter asks primary first and answers with the estimator when it
// fails. It never returns an error.
type FallbackRouter struct {
	primary   Router
	estimator HaversineEstimator
	log       zerolog.Logger
}

// NewFallbackRouter wraps primary; a nil primary means estimates only.
func NewFallbackRouter(primary Router, estimator HaversineEstimator, log zerolog.Logger) *FallbackRouter {
	return &FallbackRouter{
		primary:   primary,
		estimator: estimator,
		log:       log.With().Str("component", "routing").Logger(),
	}
}

func (r *FallbackRouter) Route(ctx context.Context, origin, destination model.LatLng) (model.RouteLeg, error) {
	if r.primary != nil {
		leg, err := r.primary.Route(ctx, origin, destination)
		if err == nil {
			return leg, nil
		}
		r.log.Warn().Err(err).
			Str("origin", origin.String()).
			Str("destination", destination.String()).
			Msg("routing failed, using haversine estimate")
	}
	return r.estimator.Estimate(origin, destination), nil
}
