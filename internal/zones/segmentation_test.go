package zones

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"vtc-pricing-service/internal/model"
)

func testZones() []model.PricingZone {
	return []model.PricingZone{
		{
			ID:                    uuid.New(),
			Code:                  "A",
			Name:                  "Zone A",
			ZoneType:              model.ZoneTypeRadius,
			CenterLat:             48.0,
			CenterLng:             2.05,
			RadiusKm:              3,
			PriceMultiplier:       1.2,
			Priority:              1,
			FixedParkingSurcharge: 10,
			FixedAccessFee:        5,
			IsActive:              true,
		},
		{
			ID:       uuid.New(),
			Code:     "B",
			Name:     "Zone B",
			ZoneType: model.ZoneTypePolygon,
			Polygon: []model.LatLng{
				{Lat: 47.9, Lng: 2.20},
				{Lat: 47.9, Lng: 2.30},
				{Lat: 48.1, Lng: 2.30},
				{Lat: 48.1, Lng: 2.20},
			},
			PriceMultiplier: 1.5,
			Priority:        1,
			FixedAccessFee:  8,
			IsActive:        true,
		},
	}
}

func encodeLine(from, to, step float64) string {
	var path []maps.LatLng
	if from <= to {
		for i := 0; from+float64(i)*step <= to+1e-9; i++ {
			path = append(path, maps.LatLng{Lat: 48.0, Lng: from + float64(i)*step})
		}
	} else {
		for i := 0; from-float64(i)*step >= to-1e-9; i++ {
			path = append(path, maps.LatLng{Lat: 48.0, Lng: from - float64(i)*step})
		}
	}
	return maps.Encode(path)
}

func TestSegmentRouteByZones_SplitsContiguousSegments(t *testing.T) {
	res, err := SegmentRouteByZones(encodeLine(2.00, 2.40, 0.01), testZones(), 60)
	require.NoError(t, err)

	require.Len(t, res.Segments, 5)
	codes := make([]string, 0, len(res.Segments))
	for _, s := range res.Segments {
		codes = append(codes, s.ZoneCode)
	}
	assert.Equal(t, []string{model.OutsideZoneCode, "A", model.OutsideZoneCode, "B", model.OutsideZoneCode}, codes)
	assert.Equal(t, []string{"A", "B"}, res.ZonesTraversed)
	assert.Equal(t, model.SegmentationPolyline, res.SegmentationMethod)

	assert.Equal(t, 15.0, res.Segments[1].SurchargesApplied)
	assert.Equal(t, 8.0, res.Segments[3].SurchargesApplied)
	assert.Equal(t, 23.0, res.TotalSurcharges)

	var minutes, km float64
	for _, s := range res.Segments {
		minutes += s.DurationMinutes
		km += s.DistanceKm
	}
	assert.InDelta(t, 60, minutes, 0.05)
	assert.InDelta(t, res.TotalDistanceKm, km, 0.05)
	assert.Greater(t, res.WeightedMultiplier, 1.0)
	assert.Less(t, res.WeightedMultiplier, 1.5)
}

func TestSegmentRouteByZones_SurchargeOncePerZone(t *testing.T) {
	outbound := encodeLine(2.00, 2.12, 0.01)
	inbound := encodeLine(2.12, 2.00, 0.01)

	var path []maps.LatLng
	out, err := maps.DecodePolyline(outbound)
	require.NoError(t, err)
	back, err := maps.DecodePolyline(inbound)
	require.NoError(t, err)
	path = append(path, out...)
	path = append(path, back[1:]...)

	res, err := SegmentRouteByZones(maps.Encode(path), testZones(), 30)
	require.NoError(t, err)

	entries := 0
	for _, s := range res.Segments {
		if s.ZoneCode == "A" {
			entries++
		}
	}
	assert.Equal(t, 2, entries)
	assert.Equal(t, 15.0, res.TotalSurcharges)
	assert.Equal(t, []string{"A"}, res.ZonesTraversed)
}

func TestSegmentRouteByZones_EmptyPolyline(t *testing.T) {
	res, err := SegmentRouteByZones("  ", testZones(), 45)
	require.NoError(t, err)

	assert.Empty(t, res.Segments)
	assert.Equal(t, 1.0, res.WeightedMultiplier)
	assert.Equal(t, model.SegmentationFallback, res.SegmentationMethod)
}

func TestSegmentRouteByZones_MalformedPolyline(t *testing.T) {
	for _, poly := range []string{"_p~iF", "abc!", "_p~iF~ps|U_"} {
		_, err := SegmentRouteByZones(poly, testZones(), 10)
		assert.ErrorIs(t, err, ErrInvalidPolyline, poly)
	}
}

func TestWeightedMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, WeightedMultiplier(nil))
	assert.Equal(t, 1.0, WeightedMultiplier([]model.ZoneSegment{}))

	got := WeightedMultiplier([]model.ZoneSegment{
		{DistanceKm: 10, PriceMultiplier: 1.2},
		{DistanceKm: 30, PriceMultiplier: 1.0},
	})
	assert.InDelta(t, 1.05, got, 1e-9)
}

func TestFindZone_HighestPriorityWins(t *testing.T) {
	zones := testZones()
	zones = append(zones, model.PricingZone{
		Code:            "A-CORE",
		ZoneType:        model.ZoneTypeRadius,
		CenterLat:       48.0,
		CenterLng:       2.05,
		RadiusKm:        1,
		PriceMultiplier: 1.3,
		Priority:        5,
		IsActive:        true,
	})

	z := FindZone(model.LatLng{Lat: 48.0, Lng: 2.05}, zones)
	require.NotNil(t, z)
	assert.Equal(t, "A-CORE", z.Code)

	z = FindZone(model.LatLng{Lat: 48.0, Lng: 2.08}, zones)
	require.NotNil(t, z)
	assert.Equal(t, "A", z.Code)

	assert.Nil(t, FindZone(model.LatLng{Lat: 45.0, Lng: 2.0}, zones))
}

func TestFindZone_IgnoresInactive(t *testing.T) {
	zones := testZones()
	zones[0].IsActive = false
	assert.Nil(t, FindZone(model.LatLng{Lat: 48.0, Lng: 2.05}, zones))
}

func TestCreateFallbackSegmentation(t *testing.T) {
	zones := testZones()
	inA := model.LatLng{Lat: 48.0, Lng: 2.05}
	inB := model.LatLng{Lat: 48.0, Lng: 2.25}

	res := CreateFallbackSegmentation(inA, inB, zones, 20, 40)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, "A", res.Segments[0].ZoneCode)
	assert.Equal(t, "B", res.Segments[1].ZoneCode)
	assert.Equal(t, 10.0, res.Segments[0].DistanceKm)
	assert.Equal(t, 20.0, res.Segments[1].DurationMinutes)
	assert.InDelta(t, 1.35, res.WeightedMultiplier, 1e-9)
	assert.Equal(t, 23.0, res.TotalSurcharges)
	assert.Equal(t, model.SegmentationFallback, res.SegmentationMethod)

	same := CreateFallbackSegmentation(inA, model.LatLng{Lat: 48.0, Lng: 2.06}, zones, 2, 6)
	require.Len(t, same.Segments, 1)
	assert.Equal(t, 1.2, same.WeightedMultiplier)
	assert.Equal(t, 15.0, same.TotalSurcharges)

	outside := CreateFallbackSegmentation(model.LatLng{Lat: 40, Lng: 2}, model.LatLng{Lat: 41, Lng: 2}, zones, 110, 90)
	require.Len(t, outside.Segments, 1)
	assert.Equal(t, model.OutsideZoneCode, outside.Segments[0].ZoneCode)
	assert.Equal(t, 1.0, outside.WeightedMultiplier)
	assert.Empty(t, outside.ZonesTraversed)
}
