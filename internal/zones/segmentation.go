package zones

import (
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"vtc-pricing-service/internal/geo"
	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

const outsideZoneName = "Outside configured zones"

type run struct {
	zone       *model.PricingZone
	distanceKm float64
	entry      model.LatLng
	exit       model.LatLng
}

// SegmentRouteByZones splits an encoded route polyline into contiguous
// per-zone segments. An empty polyline yields an empty FALLBACK result.
func SegmentRouteByZones(polyline string, zoneList []model.PricingZone, totalDurationMinutes float64) (model.SegmentationResult, error) {
	polyline = strings.TrimSpace(polyline)
	if polyline == "" {
		return emptyResult(), nil
	}
	if totalDurationMinutes < 0 {
		return model.SegmentationResult{}, fmt.Errorf("segment route: negative duration %.2f: %w", totalDurationMinutes, ErrInvalidPolyline)
	}
	if err := validatePolyline(polyline); err != nil {
		return model.SegmentationResult{}, err
	}

	decoded, err := maps.DecodePolyline(polyline)
	if err != nil {
		return model.SegmentationResult{}, fmt.Errorf("segment route: decode: %v: %w", err, ErrInvalidPolyline)
	}

	points := make([]model.LatLng, 0, len(decoded))
	for _, p := range decoded {
		points = append(points, model.LatLng{Lat: p.Lat, Lng: p.Lng})
	}

	return SegmentPoints(points, zoneList, totalDurationMinutes), nil
}

// SegmentPoints is SegmentRouteByZones over an already decoded path.
func SegmentPoints(points []model.LatLng, zoneList []model.PricingZone, totalDurationMinutes float64) model.SegmentationResult {
	if len(points) < 2 {
		return emptyResult()
	}

	var (
		runs    []run
		pathKm  float64
		current *run
	)
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		d := geo.HaversineKm(a, b)
		pathKm += d
		zone := FindZone(geo.Midpoint(a, b), zoneList)

		if current != nil && sameZone(current.zone, zone) {
			current.distanceKm += d
			current.exit = b
			continue
		}
		runs = append(runs, run{zone: zone, distanceKm: d, entry: a, exit: b})
		current = &runs[len(runs)-1]
	}

	if pathKm <= 0 {
		return emptyResult()
	}

	segments := make([]model.ZoneSegment, 0, len(runs))
	for _, r := range runs {
		segments = append(segments, newZoneSegment(r.zone, r.distanceKm, r.distanceKm/pathKm*totalDurationMinutes, r.entry, r.exit))
	}

	return finalize(segments, runs, pathKm, model.SegmentationPolyline)
}

// CreateFallbackSegmentation builds one or two segments from pickup and
// dropoff zone membership when no polyline is available.
func CreateFallbackSegmentation(pickup, dropoff model.LatLng, zoneList []model.PricingZone, distanceKm, durationMinutes float64) model.SegmentationResult {
	pickupZone := FindZone(pickup, zoneList)
	dropoffZone := FindZone(dropoff, zoneList)

	if sameZone(pickupZone, dropoffZone) {
		runs := []run{{zone: pickupZone, distanceKm: distanceKm, entry: pickup, exit: dropoff}}
		segments := []model.ZoneSegment{newZoneSegment(pickupZone, distanceKm, durationMinutes, pickup, dropoff)}
		return finalize(segments, runs, distanceKm, model.SegmentationFallback)
	}

	mid := geo.Midpoint(pickup, dropoff)
	halfKm, halfMin := distanceKm/2, durationMinutes/2
	runs := []run{
		{zone: pickupZone, distanceKm: halfKm, entry: pickup, exit: mid},
		{zone: dropoffZone, distanceKm: halfKm, entry: mid, exit: dropoff},
	}
	segments := []model.ZoneSegment{
		newZoneSegment(pickupZone, halfKm, halfMin, pickup, mid),
		newZoneSegment(dropoffZone, halfKm, halfMin, mid, dropoff),
	}
	return finalize(segments, runs, distanceKm, model.SegmentationFallback)
}

func finalize(segments []model.ZoneSegment, runs []run, totalKm float64, method model.SegmentationMethod) model.SegmentationResult {
	seen := make(map[string]struct{})
	traversed := make([]string, 0)
	var totalSurcharges float64

	for i, r := range runs {
		if r.zone == nil {
			continue
		}
		key := r.zone.ID.String() + "|" + r.zone.Code
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		traversed = append(traversed, r.zone.Code)

		surcharge := money.Round2(r.zone.Surcharge())
		segments[i].SurchargesApplied = surcharge
		totalSurcharges += surcharge
	}

	return model.SegmentationResult{
		Segments:           segments,
		WeightedMultiplier: money.Round(WeightedMultiplier(segments), 4),
		TotalSurcharges:    money.Round2(totalSurcharges),
		ZonesTraversed:     traversed,
		TotalDistanceKm:    money.Round2(totalKm),
		SegmentationMethod: method,
	}
}

func newZoneSegment(zone *model.PricingZone, distanceKm, durationMinutes float64, entry, exit model.LatLng) model.ZoneSegment {
	seg := model.ZoneSegment{
		ZoneCode:        model.OutsideZoneCode,
		ZoneName:        outsideZoneName,
		DistanceKm:      money.Round2(distanceKm),
		DurationMinutes: money.Round2(durationMinutes),
		PriceMultiplier: 1.0,
		EntryPoint:      entry,
		ExitPoint:       exit,
	}
	if zone != nil {
		id := zone.ID
		seg.ZoneID = &id
		seg.ZoneCode = zone.Code
		seg.ZoneName = zone.Name
		seg.PriceMultiplier = zone.PriceMultiplier
	}
	return seg
}

func sameZone(a, b *model.PricingZone) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID && a.Code == b.Code
}

func emptyResult() model.SegmentationResult {
	return model.SegmentationResult{
		Segments:           []model.ZoneSegment{},
		WeightedMultiplier: 1.0,
		ZonesTraversed:     []string{},
		SegmentationMethod: model.SegmentationFallback,
	}
}

// validatePolyline checks the encoded-polyline alphabet and that the text
// holds complete latitude/longitude pairs.
func validatePolyline(s string) error {
	values := 0
	open := false
	for i := 0; i < len(s); i++ {
		c := int(s[i]) - 63
		if c < 0 || c > 63 {
			return fmt.Errorf("segment route: unexpected character %q at %d: %w", s[i], i, ErrInvalidPolyline)
		}
		open = c&0x20 != 0
		if !open {
			values++
		}
	}
	if open {
		return fmt.Errorf("segment route: truncated value: %w", ErrInvalidPolyline)
	}
	if values%2 != 0 {
		return fmt.Errorf("segment route: odd number of coordinates: %w", ErrInvalidPolyline)
	}
	return nil
}
