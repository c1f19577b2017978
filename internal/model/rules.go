package model

type AppliedRuleType string

const (
	RuleVehicleCategory   AppliedRuleType = "VEHICLE_CATEGORY"
	RuleZoneMultiplier    AppliedRuleType = "ZONE_MULTIPLIER"
	RuleZoneSurcharge     AppliedRuleType = "ZONE_SURCHARGE"
	RuleSeasonal          AppliedRuleType = "SEASONAL_MULTIPLIER"
	RuleAdvancedRate      AppliedRuleType = "ADVANCED_RATE"
	RuleClientDifficulty  AppliedRuleType = "CLIENT_DIFFICULTY"
	RuleTemporalVector    AppliedRuleType = "TEMPORAL_VECTOR"
	RuleMinimumFare       AppliedRuleType = "MINIMUM_FARE"
	RuleStaffingSurcharge AppliedRuleType = "STAFFING_SURCHARGE"
	RuleOptionalFee       AppliedRuleType = "OPTIONAL_FEE"
	RulePromotion         AppliedRuleType = "PROMOTION"
)

// AppliedRule records one price adjustment. Records are only ever appended.
type AppliedRule struct {
	Type        AppliedRuleType `json:"type"`
	RuleID      string          `json:"rule_id,omitempty"`
	Description string          `json:"description"`
	PriceBefore float64         `json:"price_before"`
	PriceAfter  float64         `json:"price_after"`
	Multiplier  *float64        `json:"multiplier,omitempty"`
	Amount      *float64        `json:"amount,omitempty"`
}

// AppendRules returns a new slice holding rules followed by more; rules is left untouched.
func AppendRules(rules []AppliedRule, more ...AppliedRule) []AppliedRule {
	out := make([]AppliedRule, 0, len(rules)+len(more))
	out = append(out, rules...)
	return append(out, more...)
}
