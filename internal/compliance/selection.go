package compliance

import (
	"fmt"

	"vtc-pricing-service/internal/model"
)

var preferInternalOrder = []model.AlternativeType{
	model.AlternativeDoubleCrew,
	model.AlternativeMultiDay,
	model.AlternativeRelayDriver,
}

// NormalizePolicy maps unknown or empty policies to CHEAPEST.
func NormalizePolicy(policy model.StaffingSelectionPolicy) model.StaffingSelectionPolicy {
	switch policy {
	case model.PolicyCheapest, model.PolicyFastest, model.PolicyPreferInternal:
		return policy
	default:
		return model.PolicyCheapest
	}
}

// SelectBestStaffingPlan picks one feasible, compliant alternative according to policy.
func SelectBestStaffingPlan(alternatives model.AlternativesResult, policy model.StaffingSelectionPolicy) model.StaffingPlanSelection {
	policy = NormalizePolicy(policy)
	all := alternatives.Alternatives
	if all == nil {
		all = []model.AlternativeOption{}
	}

	selection := model.StaffingPlanSelection{
		Policy:          policy,
		AllAlternatives: all,
	}
	if len(all) == 0 {
		selection.Reason = "No staffing plan required"
		return selection
	}

	candidates := make([]model.AlternativeOption, 0, len(all))
	for _, a := range all {
		if a.IsFeasible && a.WouldBeCompliant {
			candidates = append(candidates, a)
		}
	}

	selection.IsRequired = true
	if len(candidates) == 0 {
		selection.Reason = "No feasible compliant staffing alternative, manual intervention required"
		return selection
	}

	var chosen model.AlternativeOption
	switch policy {
	case model.PolicyFastest:
		chosen = candidates[0]
		for _, c := range candidates[1:] {
			if c.AdjustedSchedule.DaysRequired < chosen.AdjustedSchedule.DaysRequired {
				chosen = c
			}
		}
		selection.Reason = fmt.Sprintf("%s is the fastest compliant option (%d day(s))", chosen.Type, chosen.AdjustedSchedule.DaysRequired)
	case model.PolicyPreferInternal:
		chosen = candidates[0]
	order:
		for _, t := range preferInternalOrder {
			for _, c := range candidates {
				if c.Type == t {
					chosen = c
					break order
				}
			}
		}
		selection.Reason = fmt.Sprintf("%s is the preferred internal staffing option", chosen.Type)
	default:
		chosen = candidates[0]
		for _, c := range candidates[1:] {
			if c.AdditionalCost.Total < chosen.AdditionalCost.Total {
				chosen = c
			}
		}
		selection.Reason = fmt.Sprintf("%s is the cheapest compliant option (+%.2f EUR)", chosen.Type, chosen.AdditionalCost.Total)
	}

	selection.SelectedPlan = &chosen
	return selection
}
