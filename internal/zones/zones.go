// Package zones maps routes onto the organization's pricing zones.
package zones

import (
	"errors"

	"vtc-pricing-service/internal/geo"
	"vtc-pricing-service/internal/model"
)

var ErrInvalidPolyline = errors.New("invalid polyline")

// Contains reports whether p lies inside zone z.
func Contains(z model.PricingZone, p model.LatLng) bool {
	switch z.ZoneType {
	case model.ZoneTypePolygon:
		return geo.PointInPolygon(p, z.Polygon)
	case model.ZoneTypeRadius:
		if z.RadiusKm <= 0 {
			return false
		}
		return geo.HaversineKm(model.LatLng{Lat: z.CenterLat, Lng: z.CenterLng}, p) <= z.RadiusKm
	default:
		return false
	}
}

// FindZone returns the highest-priority active zone containing p. Zones with
// equal priority keep their configured order.
func FindZone(p model.LatLng, zones []model.PricingZone) *model.PricingZone {
	var best *model.PricingZone
	for i := range zones {
		z := &zones[i]
		if !z.IsActive || !Contains(*z, p) {
			continue
		}
		if best == nil || z.Priority > best.Priority {
			best = z
		}
	}
	return best
}

// WeightedMultiplier is the distance-weighted average multiplier of segments,
// exactly 1.0 when there is no distance to weigh.
func WeightedMultiplier(segments []model.ZoneSegment) float64 {
	var weighted, total float64
	for _, s := range segments {
		weighted += s.DistanceKm * s.PriceMultiplier
		total += s.DistanceKm
	}
	if total <= 0 {
		return 1.0
	}
	return weighted / total
}
