package model

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationPricingSettings is the per-tenant rate table.
type OrganizationPricingSettings struct {
	OrganizationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"organization_id"`
	Timezone       string    `gorm:"type:varchar(64);not null;default:'Europe/Paris'" json:"timezone"`
	BaseLat        float64   `json:"base_lat"`
	BaseLng        float64   `json:"base_lng"`
	BaseAddress    string    `gorm:"type:text" json:"base_address"`

	BaseRatePerKm   float64 `gorm:"not null" json:"base_rate_per_km"`
	BaseRatePerHour float64 `gorm:"not null" json:"base_rate_per_hour"`
	MinimumFare     float64 `gorm:"not null;default:0" json:"minimum_fare"`

	FuelConsumptionL100km float64  `gorm:"column:fuel_consumption_l100km;not null" json:"fuel_consumption_l_100km"`
	FuelType              FuelType `gorm:"type:varchar(16);not null;default:'DIESEL'" json:"fuel_type"`
	FuelCountryCode       string   `gorm:"type:varchar(2);not null;default:'FR'" json:"fuel_country_code"`
	TollCostPerKm         float64  `gorm:"not null;default:0" json:"toll_cost_per_km"`
	WearCostPerKm         float64  `gorm:"not null;default:0" json:"wear_cost_per_km"`
	DriverHourlyCost      float64  `gorm:"not null" json:"driver_hourly_cost"`

	DispoHourlyRate           float64 `gorm:"not null;default:0" json:"dispo_hourly_rate"`
	DispoIncludedKmPerHour    float64 `gorm:"not null;default:0" json:"dispo_included_km_per_hour"`
	DispoOverageRatePerKm     float64 `gorm:"not null;default:0" json:"dispo_overage_rate_per_km"`
	AvailabilityIncludedHours float64 `gorm:"not null;default:0" json:"availability_included_hours"`

	HotelCostPerNight       float64                 `gorm:"not null;default:0" json:"hotel_cost_per_night"`
	MealCostPerDay          float64                 `gorm:"not null;default:0" json:"meal_cost_per_day"`
	StaffingSelectionPolicy StaffingSelectionPolicy `gorm:"type:varchar(32);not null;default:'CHEAPEST'" json:"staffing_selection_policy"`

	DifficultyMultipliers map[int]float64 `gorm:"type:jsonb;serializer:json" json:"difficulty_multipliers,omitempty"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OrganizationPricingSettings) TableName() string {
	return "organization_pricing_settings"
}

// DefaultPricingSettings is used for organizations that never saved a rate table.
func DefaultPricingSettings(orgID uuid.UUID) OrganizationPricingSettings {
	return OrganizationPricingSettings{
		OrganizationID:            orgID,
		Timezone:                  "Europe/Paris",
		BaseRatePerKm:             1.8,
		BaseRatePerHour:           45,
		MinimumFare:               30,
		FuelConsumptionL100km:     8.5,
		FuelType:                  FuelTypeDiesel,
		FuelCountryCode:           "FR",
		TollCostPerKm:             0.12,
		WearCostPerKm:             0.08,
		DriverHourlyCost:          25,
		DispoHourlyRate:           55,
		DispoIncludedKmPerHour:    50,
		DispoOverageRatePerKm:     1.5,
		AvailabilityIncludedHours: 0.5,
		HotelCostPerNight:         120,
		MealCostPerDay:            30,
		StaffingSelectionPolicy:   PolicyCheapest,
	}
}

func (s OrganizationPricingSettings) Base() LatLng {
	return LatLng{Lat: s.BaseLat, Lng: s.BaseLng}
}

func (s OrganizationPricingSettings) HasBase() bool {
	return s.BaseLat != 0 || s.BaseLng != 0
}

func (s OrganizationPricingSettings) StaffingCosts() StaffingCostParameters {
	return StaffingCostParameters{
		DriverHourlyCost:  s.DriverHourlyCost,
		HotelCostPerNight: s.HotelCostPerNight,
		MealCostPerDay:    s.MealCostPerDay,
	}
}

// Location resolves the organization timezone, falling back to UTC.
func (s OrganizationPricingSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// OrganizationSettings is everything the pricing core needs for one tenant.
type OrganizationSettings struct {
	Pricing             OrganizationPricingSettings
	Zones               []PricingZone
	RSERules            map[string]RSERules
	SeasonalMultipliers []SeasonalMultiplier
	AdvancedRates       []AdvancedRate
	VehicleCategories   []VehicleCategory
	OptionalFees        []OptionalFee
	Promotions          []Promotion
	TemporalVectors     []TemporalVector
}

// RulesFor returns the rule set for a license category or the heavy vehicle default.
func (s *OrganizationSettings) RulesFor(licenseCategory string) RSERules {
	if s != nil {
		if rules, ok := s.RSERules[licenseCategory]; ok {
			return rules
		}
	}
	return DefaultHeavyVehicleRSERules
}

func (s *OrganizationSettings) VehicleCategory(id uuid.UUID) (VehicleCategory, bool) {
	for _, c := range s.VehicleCategories {
		if c.ID == id {
			return c, true
		}
	}
	return VehicleCategory{}, false
}

func (s *OrganizationSettings) TemporalVector(code string) (TemporalVector, bool) {
	for _, v := range s.TemporalVectors {
		if v.Code == code {
			return v, true
		}
	}
	return TemporalVector{}, false
}
