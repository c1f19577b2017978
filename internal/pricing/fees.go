package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

type FeeResult struct {
	Price        float64
	Fees         []model.AppliedFee
	AppliedRules []model.AppliedRule
}

type PromotionResult struct {
	Price        float64
	Promotions   []model.AppliedPromotion
	AppliedRules []model.AppliedRule
}

// ApplyOptionalFees adds the selected fees in request order. Percentage fees
// are computed on the price they are applied to.
func ApplyOptionalFees(price float64, catalog []model.OptionalFee, selected []uuid.UUID, rules []model.AppliedRule) (FeeResult, error) {
	out := FeeResult{Price: price, Fees: []model.AppliedFee{}, AppliedRules: rules}

	for _, id := range selected {
		fee, ok := findFee(catalog, id)
		if !ok {
			return FeeResult{}, fmt.Errorf("optional fee %s: %w", id, ErrInvalidInput)
		}

		amount := fee.Amount
		if fee.AmountType == model.AdjustmentPercentage {
			amount = out.Price * fee.Amount / 100
		}
		amount = money.Round2(amount)

		before := out.Price
		out.Price = money.Round2(out.Price + amount)
		out.Fees = append(out.Fees, model.AppliedFee{
			ID:        fee.ID.String(),
			Name:      fee.Name,
			Amount:    amount,
			IsTaxable: fee.IsTaxable,
			VatRate:   fee.VatRate,
		})
		out.AppliedRules = model.AppendRules(out.AppliedRules, model.AppliedRule{
			Type:        model.RuleOptionalFee,
			RuleID:      fee.ID.String(),
			Description: fmt.Sprintf("Optional fee %s", fee.Name),
			PriceBefore: before,
			PriceAfter:  out.Price,
			Amount:      &amount,
		})
	}
	return out, nil
}

// ApplyPromotions applies promotion codes in request order. A discount never
// takes the price below zero.
func ApplyPromotions(price float64, catalog []model.Promotion, codes []string, rules []model.AppliedRule) (PromotionResult, error) {
	out := PromotionResult{Price: price, Promotions: []model.AppliedPromotion{}, AppliedRules: rules}

	for _, code := range codes {
		promo, ok := findPromotion(catalog, code)
		if !ok {
			return PromotionResult{}, fmt.Errorf("promotion %q: %w", code, ErrInvalidInput)
		}

		discount := promo.Value
		if promo.DiscountType == model.AdjustmentPercentage {
			discount = out.Price * promo.Value / 100
		}
		discount = money.Round2(math.Min(math.Max(discount, 0), out.Price))

		before := out.Price
		out.Price = money.Round2(out.Price - discount)
		negative := -discount
		out.Promotions = append(out.Promotions, model.AppliedPromotion{
			ID:             promo.ID.String(),
			Code:           promo.Code,
			DiscountAmount: discount,
		})
		out.AppliedRules = model.AppendRules(out.AppliedRules, model.AppliedRule{
			Type:        model.RulePromotion,
			RuleID:      promo.ID.String(),
			Description: fmt.Sprintf("Promotion %s", promo.Code),
			PriceBefore: before,
			PriceAfter:  out.Price,
			Amount:      &negative,
		})
	}
	return out, nil
}

func findFee(catalog []model.OptionalFee, id uuid.UUID) (model.OptionalFee, bool) {
	for _, f := range catalog {
		if f.ID == id && f.IsActive {
			return f, true
		}
	}
	return model.OptionalFee{}, false
}

func findPromotion(catalog []model.Promotion, code string) (model.Promotion, bool) {
	for _, p := range catalog {
		if p.IsActive && strings.EqualFold(p.Code, strings.TrimSpace(code)) {
			return p, true
		}
	}
	return model.Promotion{}, false
}
