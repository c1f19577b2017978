package routing

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

var ErrNoRoute = errors.New("no route found")

// GoogleRouter resolves legs with the Google Maps Directions API.
type GoogleRouter struct {
	client *maps.Client
	region string
}

func NewGoogleRouter(apiKey, region string) (*GoogleRouter, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleRouter{client: client, region: region}, nil
}

func (g *GoogleRouter) Route(ctx context.Context, origin, destination model.LatLng) (model.RouteLeg, error) {
	req := &maps.DirectionsRequest{
		Origin:      origin.String(),
		Destination: destination.String(),
		Mode:        maps.TravelModeDriving,
		Region:      g.region,
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return model.RouteLeg{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return model.RouteLeg{}, ErrNoRoute
	}

	route := routes[0]
	var meters int
	var seconds float64
	for _, leg := range route.Legs {
		meters += leg.Distance.Meters
		seconds += leg.Duration.Seconds()
	}

	return model.RouteLeg{
		DistanceKm:      money.Round2(float64(meters) / 1000),
		DurationMinutes: money.Round2(seconds / 60),
		Polyline:        route.OverviewPolyline.Points,
		Source:          model.RoutingSourceRouted,
	}, nil
}
