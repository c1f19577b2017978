package multiplier

import (
	"fmt"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// DefaultDifficultyMultipliers maps a client difficulty score to its price multiplier.
var DefaultDifficultyMultipliers = map[int]float64{
	1: 1.00,
	2: 1.02,
	3: 1.05,
	4: 1.08,
	5: 1.10,
}

// ResolveDifficultyScore prefers the end customer score over the contact score.
func ResolveDifficultyScore(endCustomerScore, contactScore *int) (*int, model.DifficultySource) {
	if endCustomerScore != nil {
		return endCustomerScore, model.DifficultySourceEndCustomer
	}
	if contactScore != nil {
		return contactScore, model.DifficultySourceContact
	}
	return nil, model.DifficultySourceNone
}

// ApplyClientDifficultyMultiplier scales price by the multiplier of score.
// A nil score or one outside 1..5 leaves the price unchanged.
func ApplyClientDifficultyMultiplier(price float64, score *int, table map[int]float64) Result {
	if score == nil || *score < 1 || *score > 5 {
		return unchanged(price)
	}
	if len(table) == 0 {
		table = DefaultDifficultyMultipliers
	}
	m, ok := table[*score]
	if !ok {
		m, ok = DefaultDifficultyMultipliers[*score]
		if !ok {
			return unchanged(price)
		}
	}

	adjusted := money.Round2(price * m)
	return Result{
		AdjustedPrice: adjusted,
		AppliedRule: &model.AppliedRule{
			Type:        model.RuleClientDifficulty,
			Description: fmt.Sprintf("Client difficulty score %d (x%.2f)", *score, m),
			PriceBefore: price,
			PriceAfter:  adjusted,
			Multiplier:  ptr(m),
		},
	}
}
