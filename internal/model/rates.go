package model

import (
	"time"

	"github.com/google/uuid"
)

type SeasonalMultiplier struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null" json:"end_date"`
	Multiplier     float64   `gorm:"not null" json:"multiplier"`
	Priority       int       `gorm:"not null;default:0" json:"priority"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
}

func (SeasonalMultiplier) TableName() string {
	return "seasonal_multipliers"
}

type AdvancedRateKind string

const (
	AdvancedRateNight   AdvancedRateKind = "NIGHT"
	AdvancedRateWeekend AdvancedRateKind = "WEEKEND"
)

type AdjustmentType string

const (
	AdjustmentPercentage  AdjustmentType = "PERCENTAGE"
	AdjustmentFixedAmount AdjustmentType = "FIXED_AMOUNT"
)

// AdvancedRate is a time-of-day or day-of-week adjustment. StartTime and
// EndTime use "HH:MM"; a window whose end precedes its start crosses midnight.
type AdvancedRate struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string           `gorm:"type:varchar(255);not null" json:"name"`
	AppliesTo      AdvancedRateKind `gorm:"type:varchar(16);not null" json:"applies_to"`
	StartTime      string           `gorm:"type:varchar(5)" json:"start_time,omitempty"`
	EndTime        string           `gorm:"type:varchar(5)" json:"end_time,omitempty"`
	DaysOfWeek     []int            `gorm:"type:jsonb;serializer:json" json:"days_of_week,omitempty"`
	AdjustmentType AdjustmentType   `gorm:"type:varchar(16);not null" json:"adjustment_type"`
	Value          float64          `gorm:"not null" json:"value"`
	Priority       int              `gorm:"not null;default:0" json:"priority"`
	IsActive       bool             `gorm:"not null;default:true" json:"is_active"`
}

func (AdvancedRate) TableName() string {
	return "advanced_rates"
}

type VehicleCategory struct {
	ID                    uuid.UUID          `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrganizationID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"organization_id"`
	Code                  string             `gorm:"type:varchar(64);not null" json:"code"`
	Name                  string             `gorm:"type:varchar(255);not null" json:"name"`
	RegulatoryCategory    RegulatoryCategory `gorm:"type:varchar(16);not null;default:'LIGHT'" json:"regulatory_category"`
	LicenseCategory       string             `gorm:"type:varchar(16)" json:"license_category,omitempty"`
	PriceMultiplier       float64            `gorm:"not null;default:1" json:"price_multiplier"`
	FuelConsumptionL100km *float64           `gorm:"column:fuel_consumption_l100km" json:"fuel_consumption_l_100km,omitempty"`
}

func (VehicleCategory) TableName() string {
	return "vehicle_categories"
}

// TemporalVector is a named excursion package billed for at least MinimumDurationHours.
type TemporalVector struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrganizationID       uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Code                 string    `gorm:"type:varchar(64);not null" json:"code"`
	Name                 string    `gorm:"type:varchar(255);not null" json:"name"`
	MinimumDurationHours float64   `gorm:"not null" json:"minimum_duration_hours"`
}

func (TemporalVector) TableName() string {
	return "temporal_vectors"
}
