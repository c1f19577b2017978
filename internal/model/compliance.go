package model

import (
	"time"

	"github.com/google/uuid"
)

// RSERules are the driving-time regulations for one license category.
type RSERules struct {
	LicenseCategory             string   `json:"license_category"`
	MaxDailyDrivingHours        float64  `json:"max_daily_driving_hours"`
	MaxDailyAmplitudeHours      float64  `json:"max_daily_amplitude_hours"`
	BreakMinutesPerDrivingBlock float64  `json:"break_minutes_per_driving_block"`
	DrivingBlockHoursForBreak   float64  `json:"driving_block_hours_for_break"`
	CappedAverageSpeedKmh       *float64 `json:"capped_average_speed_kmh"`
}

var defaultHeavyCappedSpeed = 85.0

// DefaultHeavyVehicleRSERules applies when an organization has no rule set for a category.
var DefaultHeavyVehicleRSERules = RSERules{
	LicenseCategory:             "D",
	MaxDailyDrivingHours:        10,
	MaxDailyAmplitudeHours:      14,
	BreakMinutesPerDrivingBlock: 45,
	DrivingBlockHoursForBreak:   4.5,
	CappedAverageSpeedKmh:       &defaultHeavyCappedSpeed,
}

type RSERuleSet struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrganizationID              uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	LicenseCategory             string    `gorm:"type:varchar(16);not null" json:"license_category"`
	MaxDailyDrivingHours        float64   `gorm:"not null" json:"max_daily_driving_hours"`
	MaxDailyAmplitudeHours      float64   `gorm:"not null" json:"max_daily_amplitude_hours"`
	BreakMinutesPerDrivingBlock float64   `gorm:"not null" json:"break_minutes_per_driving_block"`
	DrivingBlockHoursForBreak   float64   `gorm:"not null" json:"driving_block_hours_for_break"`
	CappedAverageSpeedKmh       *float64  `json:"capped_average_speed_kmh"`
	CreatedAt                   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RSERuleSet) TableName() string {
	return "rse_rule_sets"
}

func (r RSERuleSet) Rules() RSERules {
	return RSERules{
		LicenseCategory:             r.LicenseCategory,
		MaxDailyDrivingHours:        r.MaxDailyDrivingHours,
		MaxDailyAmplitudeHours:      r.MaxDailyAmplitudeHours,
		BreakMinutesPerDrivingBlock: r.BreakMinutesPerDrivingBlock,
		DrivingBlockHoursForBreak:   r.DrivingBlockHoursForBreak,
		CappedAverageSpeedKmh:       r.CappedAverageSpeedKmh,
	}
}

type ViolationType string

const (
	ViolationDrivingTimeExceeded ViolationType = "DRIVING_TIME_EXCEEDED"
	ViolationAmplitudeExceeded   ViolationType = "AMPLITUDE_EXCEEDED"
)

type WarningType string

const (
	WarningApproachingDrivingLimit   WarningType = "APPROACHING_DRIVING_LIMIT"
	WarningApproachingAmplitudeLimit WarningType = "APPROACHING_AMPLITUDE_LIMIT"
)

type RuleStatus string

const (
	RuleStatusPass    RuleStatus = "PASS"
	RuleStatusFail    RuleStatus = "FAIL"
	RuleStatusWarning RuleStatus = "WARNING"
)

type ComplianceRule string

const (
	ComplianceRuleDrivingTime ComplianceRule = "MAX_DAILY_DRIVING_TIME"
	ComplianceRuleAmplitude   ComplianceRule = "MAX_DAILY_AMPLITUDE"
)

type ComplianceViolation struct {
	Type    ViolationType `json:"type"`
	Message string        `json:"message"`
	Actual  float64       `json:"actual"`
	Limit   float64       `json:"limit"`
	Unit    string        `json:"unit"`
}

type ComplianceWarning struct {
	Type           WarningType `json:"type"`
	Message        string      `json:"message"`
	Actual         float64     `json:"actual"`
	Limit          float64     `json:"limit"`
	PercentOfLimit float64     `json:"percent_of_limit"`
}

type AdjustedDurations struct {
	TotalDrivingMinutes      float64 `json:"total_driving_minutes"`
	TotalAmplitudeMinutes    float64 `json:"total_amplitude_minutes"`
	InjectedBreakMinutes     float64 `json:"injected_break_minutes"`
	CappedSpeedApplied       bool    `json:"capped_speed_applied"`
	OriginalDrivingMinutes   float64 `json:"original_driving_minutes"`
	OriginalAmplitudeMinutes float64 `json:"original_amplitude_minutes"`
}

type RuleCheck struct {
	Rule      ComplianceRule `json:"rule"`
	Status    RuleStatus     `json:"status"`
	Threshold float64        `json:"threshold"`
	Actual    float64        `json:"actual"`
	Unit      string         `json:"unit"`
}

type ComplianceValidationResult struct {
	IsCompliant       bool                  `json:"is_compliant"`
	Violations        []ComplianceViolation `json:"violations"`
	Warnings          []ComplianceWarning   `json:"warnings"`
	AdjustedDurations AdjustedDurations     `json:"adjusted_durations"`
	RulesApplied      []RuleCheck           `json:"rules_applied"`
	RulesUsed         *RSERules             `json:"rules_used"`
}

// HasViolation reports whether a violation of type t was detected.
func (r ComplianceValidationResult) HasViolation(t ViolationType) bool {
	for _, v := range r.Violations {
		if v.Type == t {
			return true
		}
	}
	return false
}

type AlternativeType string

const (
	AlternativeDoubleCrew  AlternativeType = "DOUBLE_CREW"
	AlternativeRelayDriver AlternativeType = "RELAY_DRIVER"
	AlternativeMultiDay    AlternativeType = "MULTI_DAY"
)

type AdditionalCostBreakdown struct {
	ExtraDriverCost float64 `json:"extra_driver_cost"`
	HotelCost       float64 `json:"hotel_cost"`
	MealCost        float64 `json:"meal_cost"`
	OtherCosts      float64 `json:"other_costs"`
}

type AdditionalCost struct {
	Total     float64                 `json:"total"`
	Breakdown AdditionalCostBreakdown `json:"breakdown"`
}

type AdjustedSchedule struct {
	DaysRequired    int `json:"days_required"`
	DriversRequired int `json:"drivers_required"`
	HotelNights     int `json:"hotel_nights"`
}

type AlternativeOption struct {
	Type                AlternativeType  `json:"type"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	IsFeasible          bool             `json:"is_feasible"`
	WouldBeCompliant    bool             `json:"would_be_compliant"`
	AdditionalCost      AdditionalCost   `json:"additional_cost"`
	AdjustedSchedule    AdjustedSchedule `json:"adjusted_schedule"`
	RemainingViolations []ViolationType  `json:"remaining_violations"`
}

// StaffingCostParameters price the extra resources of a staffing alternative.
type StaffingCostParameters struct {
	DriverHourlyCost  float64 `json:"driver_hourly_cost"`
	HotelCostPerNight float64 `json:"hotel_cost_per_night"`
	MealCostPerDay    float64 `json:"meal_cost_per_day"`
}

type AlternativesResult struct {
	HasAlternatives    bool                  `json:"has_alternatives"`
	Message            string                `json:"message"`
	Alternatives       []AlternativeOption   `json:"alternatives"`
	OriginalViolations []ComplianceViolation `json:"original_violations"`
}

type StaffingSelectionPolicy string

const (
	PolicyCheapest       StaffingSelectionPolicy = "CHEAPEST"
	PolicyFastest        StaffingSelectionPolicy = "FASTEST"
	PolicyPreferInternal StaffingSelectionPolicy = "PREFER_INTERNAL"
)

type StaffingPlanSelection struct {
	IsRequired      bool                    `json:"is_required"`
	SelectedPlan    *AlternativeOption      `json:"selected_plan"`
	Policy          StaffingSelectionPolicy `json:"policy"`
	Reason          string                  `json:"reason"`
	AllAlternatives []AlternativeOption     `json:"all_alternatives"`
}

// AdditionalCost is the cost of the selected plan, zero when none is selected.
func (s StaffingPlanSelection) AdditionalCost() float64 {
	if s.SelectedPlan == nil {
		return 0
	}
	return s.SelectedPlan.AdditionalCost.Total
}

// CompliancePlan is what the pricing engine attaches to a TripAnalysis.
type CompliancePlan struct {
	PlanType       *AlternativeType           `json:"plan_type"`
	IsRequired     bool                       `json:"is_required"`
	AdditionalCost float64                    `json:"additional_cost"`
	Reason         string                     `json:"reason"`
	Validation     ComplianceValidationResult `json:"validation"`
	Selection      StaffingPlanSelection      `json:"selection"`
}
