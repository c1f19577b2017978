package multiplier

import (
	"fmt"
	"strings"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// ApplyZoneMultiplier scales price by the distance-weighted zone multiplier.
func ApplyZoneMultiplier(price float64, seg model.SegmentationResult) Result {
	m := seg.WeightedMultiplier
	if m == 0 || m == 1.0 {
		return unchanged(price)
	}

	adjusted := money.Round2(price * m)
	return Result{
		AdjustedPrice: adjusted,
		AppliedRule: &model.AppliedRule{
			Type:        model.RuleZoneMultiplier,
			Description: fmt.Sprintf("Zone multiplier x%.4g across %s", m, zoneList(seg.ZonesTraversed)),
			PriceBefore: price,
			PriceAfter:  adjusted,
			Multiplier:  ptr(m),
		},
	}
}

// ApplyZoneSurcharges adds the one-time surcharges of every zone traversed.
func ApplyZoneSurcharges(price float64, seg model.SegmentationResult) Result {
	if seg.TotalSurcharges <= 0 {
		return unchanged(price)
	}

	adjusted := money.Round2(price + seg.TotalSurcharges)
	return Result{
		AdjustedPrice: adjusted,
		AppliedRule: &model.AppliedRule{
			Type:        model.RuleZoneSurcharge,
			Description: fmt.Sprintf("Zone surcharges for %s", zoneList(seg.ZonesTraversed)),
			PriceBefore: price,
			PriceAfter:  adjusted,
			Amount:      ptr(seg.TotalSurcharges),
		},
	}
}

// ApplyVehicleCategoryMultiplier scales price by the vehicle category multiplier.
func ApplyVehicleCategoryMultiplier(price float64, category *model.VehicleCategory) Result {
	if category == nil || category.PriceMultiplier == 0 || category.PriceMultiplier == 1.0 {
		return unchanged(price)
	}

	adjusted := money.Round2(price * category.PriceMultiplier)
	return Result{
		AdjustedPrice: adjusted,
		AppliedRule: &model.AppliedRule{
			Type:        model.RuleVehicleCategory,
			RuleID:      category.ID.String(),
			Description: fmt.Sprintf("Vehicle category %s (x%.2f)", category.Name, category.PriceMultiplier),
			PriceBefore: price,
			PriceAfter:  adjusted,
			Multiplier:  ptr(category.PriceMultiplier),
		},
	}
}

func zoneList(codes []string) string {
	if len(codes) == 0 {
		return "no zone"
	}
	return strings.Join(codes, ", ")
}
