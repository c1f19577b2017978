// Package multiplier holds the independent price adjustment rules. Every
// function takes a price and returns the adjusted price, rounded to cents,
// plus the rule it applied (nil when it did not apply).
package multiplier

import "vtc-pricing-service/internal/model"

type Result struct {
	AdjustedPrice float64
	AppliedRule   *model.AppliedRule
}

// ChainResult is the outcome of several rules applied in sequence.
type ChainResult struct {
	AdjustedPrice float64
	AppliedRules  []model.AppliedRule
}

func unchanged(price float64) Result {
	return Result{AdjustedPrice: price}
}

func ptr(v float64) *float64 {
	return &v
}
