package model

type DifficultySource string

const (
	DifficultySourceEndCustomer DifficultySource = "END_CUSTOMER"
	DifficultySourceContact     DifficultySource = "CONTACT"
	DifficultySourceNone        DifficultySource = "NONE"
)

// PricingResult is the full outcome of pricing one trip.
type PricingResult struct {
	Price                  float64            `json:"price"`
	BasePrice              float64            `json:"base_price"`
	InternalCost           float64            `json:"internal_cost"`
	Margin                 float64            `json:"margin"`
	MarginPercent          float64            `json:"margin_percent"`
	RegulatoryCategory     RegulatoryCategory `json:"regulatory_category"`
	AdditionalStaffingCost float64            `json:"additional_staffing_cost"`
	AppliedRules           []AppliedRule      `json:"applied_rules"`
	OptionalFees           []AppliedFee       `json:"optional_fees"`
	Promotions             []AppliedPromotion `json:"promotions"`
	DifficultyScore        *int               `json:"difficulty_score"`
	DifficultySource       DifficultySource   `json:"difficulty_source"`
	FuelPrice              FuelPriceResult    `json:"fuel_price"`
	TripAnalysis           TripAnalysis       `json:"trip_analysis"`
}
