package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtc-pricing-service/internal/model"
)

var (
	paris = model.LatLng{Lat: 48.8566, Lng: 2.3522}
	lyon  = model.LatLng{Lat: 45.7640, Lng: 4.8357}
)

type stubRouter struct {
	leg model.RouteLeg
	err error
}

func (s stubRouter) Route(context.Context, model.LatLng, model.LatLng) (model.RouteLeg, error) {
	return s.leg, s.err
}

func TestHaversineEstimate(t *testing.T) {
	leg := NewHaversineEstimator().Estimate(paris, lyon)

	assert.Equal(t, model.RoutingSourceHaversine, leg.Source)
	assert.True(t, leg.IsEstimated())
	assert.InDelta(t, 392*1.3, leg.DistanceKm, 8)
	assert.InDelta(t, leg.DistanceKm/50*60, leg.DurationMinutes, 0.02)
	assert.Empty(t, leg.Polyline)
}

func TestHaversineEstimateSamePoint(t *testing.T) {
	leg := NewHaversineEstimator().Estimate(paris, paris)
	assert.Equal(t, 0.0, leg.DistanceKm)
	assert.Equal(t, 0.0, leg.DurationMinutes)
}

func TestFallbackRouterUsesPrimary(t *testing.T) {
	routed := model.RouteLeg{DistanceKm: 465.2, DurationMinutes: 281, Polyline: "_p~iF~ps|U", Source: model.RoutingSourceRouted}
	r := NewFallbackRouter(stubRouter{leg: routed}, NewHaversineEstimator(), zerolog.Nop())

	leg, err := r.Route(context.Background(), paris, lyon)
	require.NoError(t, err)
	assert.Equal(t, routed, leg)
	assert.False(t, leg.IsEstimated())
}

func TestFallbackRouterEstimatesOnFailure(t *testing.T) {
	for name, primary := range map[string]Router{
		"error": stubRouter{err: errors.New("OVER_QUERY_LIMIT")},
		"nil":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			r := NewFallbackRouter(primary, NewHaversineEstimator(), zerolog.Nop())
			leg, err := r.Route(context.Background(), paris, lyon)
			require.NoError(t, err)
			assert.Equal(t, model.RoutingSourceHaversine, leg.Source)
			assert.Greater(t, leg.DistanceKm, 400.0)
		})
	}
}
