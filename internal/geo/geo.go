// Package geo contains pure geographic computation helpers.
package geo

import (
	"math"

	"vtc-pricing-service/internal/model"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two points.
func HaversineKm(a, b model.LatLng) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Midpoint is the coordinate average of a and b, accurate enough for the
// short sub-segments of a decoded route.
func Midpoint(a, b model.LatLng) model.LatLng {
	return model.LatLng{Lat: (a.Lat + b.Lat) / 2, Lng: (a.Lng + b.Lng) / 2}
}

// PointInPolygon uses ray casting; the polygon may be open or closed.
func PointInPolygon(p model.LatLng, polygon []model.LatLng) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		vi, vj := polygon[i], polygon[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) &&
			p.Lng < (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lng {
			inside = !inside
		}
		j = i
	}
	return inside
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
