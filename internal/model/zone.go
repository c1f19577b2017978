package model

import (
	"time"

	"github.com/google/uuid"
)

type ZoneType string

const (
	ZoneTypeRadius  ZoneType = "RADIUS"
	ZoneTypePolygon ZoneType = "POLYGON"
)

type SegmentationMethod string

const (
	SegmentationPolyline SegmentationMethod = "POLYLINE"
	SegmentationFallback SegmentationMethod = "FALLBACK"
)

// OutsideZoneCode labels route portions that fall in no configured zone.
const OutsideZoneCode = "OUTSIDE"

type PricingZone struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrganizationID        uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Code                  string    `gorm:"type:varchar(64);not null" json:"code"`
	Name                  string    `gorm:"type:varchar(255);not null" json:"name"`
	ZoneType              ZoneType  `gorm:"type:varchar(16);not null" json:"zone_type"`
	CenterLat             float64   `json:"center_lat"`
	CenterLng             float64   `json:"center_lng"`
	RadiusKm              float64   `json:"radius_km"`
	Polygon               []LatLng  `gorm:"type:jsonb;serializer:json" json:"polygon,omitempty"`
	PriceMultiplier       float64   `gorm:"not null;default:1" json:"price_multiplier"`
	Priority              int       `gorm:"not null;default:0" json:"priority"`
	FixedParkingSurcharge float64   `gorm:"not null;default:0" json:"fixed_parking_surcharge"`
	FixedAccessFee        float64   `gorm:"not null;default:0" json:"fixed_access_fee"`
	IsActive              bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PricingZone) TableName() string {
	return "pricing_zones"
}

// Surcharge is the one-time amount charged when a trip enters the zone.
func (z PricingZone) Surcharge() float64 {
	return z.FixedParkingSurcharge + z.FixedAccessFee
}

type ZoneSegment struct {
	ZoneID            *uuid.UUID `json:"zone_id"`
	ZoneCode          string     `json:"zone_code"`
	ZoneName          string     `json:"zone_name"`
	DistanceKm        float64    `json:"distance_km"`
	DurationMinutes   float64    `json:"duration_minutes"`
	PriceMultiplier   float64    `json:"price_multiplier"`
	SurchargesApplied float64    `json:"surcharges_applied"`
	EntryPoint        LatLng     `json:"entry_point"`
	ExitPoint         LatLng     `json:"exit_point"`
}

type SegmentationResult struct {
	Segments           []ZoneSegment      `json:"segments"`
	WeightedMultiplier float64            `json:"weighted_multiplier"`
	TotalSurcharges    float64            `json:"total_surcharges"`
	ZonesTraversed     []string           `json:"zones_traversed"`
	TotalDistanceKm    float64            `json:"total_distance_km"`
	SegmentationMethod SegmentationMethod `json:"segmentation_method"`
}
