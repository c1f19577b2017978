package model

import (
	"time"

	"github.com/google/uuid"
)

type TripType string

const (
	TripTypeTransfer  TripType = "TRANSFER"
	TripTypeDispo     TripType = "DISPO"
	TripTypeExcursion TripType = "EXCURSION"
)

type RegulatoryCategory string

const (
	RegulatoryCategoryLight RegulatoryCategory = "LIGHT"
	RegulatoryCategoryHeavy RegulatoryCategory = "HEAVY"
)

type RoutingSource string

const (
	RoutingSourceHaversine RoutingSource = "HAVERSINE_ESTIMATE"
	RoutingSourceRouted    RoutingSource = "ROUTED"
)

type SegmentName string

const (
	SegmentApproach SegmentName = "approach"
	SegmentService  SegmentName = "service"
	SegmentReturn   SegmentName = "return"
)

// TripInput is the already-resolved description of a trip to price.
type TripInput struct {
	TripType          TripType   `json:"trip_type"`
	VehicleCategoryID *uuid.UUID `json:"vehicle_category_id,omitempty"`
	Pickup            LatLng     `json:"pickup"`
	Dropoff           LatLng     `json:"dropoff"`
	PickupAddress     string     `json:"pickup_address,omitempty"`
	DropoffAddress    string     `json:"dropoff_address,omitempty"`
	PickupAt          time.Time  `json:"pickup_at"`

	// EstimatedDropoffAt switches the amplitude computation to explicit timestamps.
	EstimatedDropoffAt *time.Time `json:"estimated_dropoff_at,omitempty"`

	// Pre-routed service leg supplied by the caller. When DistanceKm is nil the
	// engine asks its router.
	ServiceDistanceKm      *float64 `json:"service_distance_km,omitempty"`
	ServiceDurationMinutes *float64 `json:"service_duration_minutes,omitempty"`
	Polyline               string   `json:"polyline,omitempty"`

	DispoHours         float64 `json:"dispo_hours,omitempty"`
	TemporalVectorCode string  `json:"temporal_vector_code,omitempty"`

	EndCustomerDifficultyScore *int `json:"end_customer_difficulty_score,omitempty"`
	ContactDifficultyScore     *int `json:"contact_difficulty_score,omitempty"`

	OptionalFeeIDs []uuid.UUID `json:"optional_fee_ids,omitempty"`
	PromotionCodes []string    `json:"promotion_codes,omitempty"`

	StaffingPolicy StaffingSelectionPolicy `json:"staffing_policy,omitempty"`
}

// RouteLeg is one origin/destination pair as resolved by a router.
type RouteLeg struct {
	DistanceKm      float64       `json:"distance_km"`
	DurationMinutes float64       `json:"duration_minutes"`
	Polyline        string        `json:"polyline,omitempty"`
	Source          RoutingSource `json:"source"`
}

func (l RouteLeg) IsEstimated() bool {
	return l.Source != RoutingSourceRouted
}

type Segment struct {
	Name            SegmentName   `json:"name"`
	DistanceKm      float64       `json:"distance_km"`
	DurationMinutes float64       `json:"duration_minutes"`
	Cost            CostBreakdown `json:"cost"`
	IsEstimated     bool          `json:"is_estimated"`
}

// Segments holds the trip legs. Approach and Return are nil when the leg does
// not exist, which is distinct from a zero-distance leg.
type Segments struct {
	Approach *Segment `json:"approach"`
	Service  Segment  `json:"service"`
	Return   *Segment `json:"return"`
}

// Present returns the existing segments in travel order.
func (s Segments) Present() []Segment {
	out := make([]Segment, 0, 3)
	if s.Approach != nil {
		out = append(out, *s.Approach)
	}
	out = append(out, s.Service)
	if s.Return != nil {
		out = append(out, *s.Return)
	}
	return out
}

type PositioningCost struct {
	Required        bool    `json:"required"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	Cost            float64 `json:"cost"`
	Reason          string  `json:"reason"`
}

type AvailabilityFee struct {
	Required      bool    `json:"required"`
	WaitingHours  float64 `json:"waiting_hours"`
	IncludedHours float64 `json:"included_hours"`
	BilledHours   float64 `json:"billed_hours"`
	HourlyRate    float64 `json:"hourly_rate"`
	Cost          float64 `json:"cost"`
	Reason        string  `json:"reason"`
}

type PositioningCosts struct {
	ApproachFee     PositioningCost `json:"approach_fee"`
	EmptyReturn     PositioningCost `json:"empty_return"`
	AvailabilityFee AvailabilityFee `json:"availability_fee"`
	TotalCost       float64         `json:"total_cost"`
}

// TripAnalysis is built once per pricing request and treated as immutable:
// later stages return modified copies.
type TripAnalysis struct {
	Segments             Segments            `json:"segments"`
	CostBreakdown        CostBreakdown       `json:"cost_breakdown"`
	TotalDistanceKm      float64             `json:"total_distance_km"`
	TotalDurationMinutes float64             `json:"total_duration_minutes"`
	TotalInternalCost    float64             `json:"total_internal_cost"`
	PositioningCosts     PositioningCosts    `json:"positioning_costs"`
	RoutingSource        RoutingSource       `json:"routing_source"`
	ZoneSegmentation     *SegmentationResult `json:"zone_segmentation,omitempty"`
	CompliancePlan       *CompliancePlan     `json:"compliance_plan"`
}

// WithCompliancePlan returns a copy carrying plan.
func (a TripAnalysis) WithCompliancePlan(plan *CompliancePlan) TripAnalysis {
	a.CompliancePlan = plan
	return a
}
