package pricing

import (
	"fmt"

	"vtc-pricing-service/internal/compliance"
	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// ComplianceContext is what the compliance step needs besides the analysis.
type ComplianceContext struct {
	RegulatoryCategory model.RegulatoryCategory
	Rules              model.RSERules
	StaffingCosts      model.StaffingCostParameters
	Policy             model.StaffingSelectionPolicy
	Trip               model.TripInput
}

type ComplianceIntegration struct {
	Analysis               model.TripAnalysis
	AdditionalStaffingCost float64
	Price                  float64
	AppliedRules           []model.AppliedRule
}

// IntegrateComplianceIntoPricing validates HEAVY trips against the RSE rules,
// selects a staffing plan when they fail and adds its cost to the price. LIGHT
// trips pass through untouched with no compliance plan.
func IntegrateComplianceIntoPricing(analysis model.TripAnalysis, price float64, rules []model.AppliedRule, cc ComplianceContext) ComplianceIntegration {
	out := ComplianceIntegration{
		Analysis:     analysis.WithCompliancePlan(nil),
		Price:        price,
		AppliedRules: rules,
	}
	if cc.RegulatoryCategory != model.RegulatoryCategoryHeavy {
		return out
	}

	validation := compliance.ValidateHeavyVehicleCompliance(
		compliance.InputFromAnalysis(analysis, cc.RegulatoryCategory, cc.Trip),
		cc.Rules,
	)
	alternatives := compliance.GenerateAlternatives(validation, cc.StaffingCosts)
	selection := compliance.SelectBestStaffingPlan(alternatives, cc.Policy)

	plan := &model.CompliancePlan{
		IsRequired:     selection.IsRequired,
		AdditionalCost: selection.AdditionalCost(),
		Validation:     validation,
		Selection:      selection,
	}
	switch {
	case validation.IsCompliant:
		plan.Reason = "Trip complies with RSE rules"
	case selection.SelectedPlan != nil:
		planType := selection.SelectedPlan.Type
		plan.PlanType = &planType
		plan.Reason = selection.Reason
	default:
		plan.Reason = selection.Reason
	}
	out.Analysis = analysis.WithCompliancePlan(plan)

	if plan.AdditionalCost > 0 {
		cost := plan.AdditionalCost
		out.AdditionalStaffingCost = cost
		out.Price = money.Round2(price + cost)
		out.AppliedRules = model.AppendRules(rules, model.AppliedRule{
			Type:        model.RuleStaffingSurcharge,
			Description: fmt.Sprintf("RSE staffing: %s", selection.SelectedPlan.Title),
			PriceBefore: price,
			PriceAfter:  out.Price,
			Amount:      &cost,
		})
	}
	return out
}
