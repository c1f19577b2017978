package compliance

import (
	"fmt"
	"math"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// Limits of the staffing alternatives.
const (
	DoubleCrewAmplitudeHours = 18.0
	DoubleCrewIncludedHours  = 8.0
	MultiDayMaxDays          = 3
	MultiDayExtraDriverHours = 8.0
	relayDriverCount         = 2
	doubleCrewDriverCount    = 2
	singleDriverCount        = 1
	singleDay                = 1
)

// GenerateAlternatives proposes double crew, relay driver and multi-day plans
// for a non-compliant validation result. Each option reports whether it would
// clear every violation on its own.
func GenerateAlternatives(validation model.ComplianceValidationResult, costs model.StaffingCostParameters) model.AlternativesResult {
	if validation.RulesUsed == nil {
		return model.AlternativesResult{
			Message:            "Vehicle is not subject to RSE driving-time rules",
			Alternatives:       []model.AlternativeOption{},
			OriginalViolations: []model.ComplianceViolation{},
		}
	}
	if validation.IsCompliant || len(validation.Violations) == 0 {
		return model.AlternativesResult{
			Message:            "Trip is compliant, no staffing alternative needed",
			Alternatives:       []model.AlternativeOption{},
			OriginalViolations: []model.ComplianceViolation{},
		}
	}

	rules := *validation.RulesUsed
	durations := validation.AdjustedDurations
	alternatives := []model.AlternativeOption{
		doubleCrew(validation, durations, costs),
		relayDriver(validation, rules, durations, costs),
		multiDay(validation, rules, durations, costs),
	}

	feasible := 0
	for _, a := range alternatives {
		if a.IsFeasible && a.WouldBeCompliant {
			feasible++
		}
	}

	return model.AlternativesResult{
		HasAlternatives:    true,
		Message:            fmt.Sprintf("%d of %d staffing alternatives would make the trip compliant", feasible, len(alternatives)),
		Alternatives:       alternatives,
		OriginalViolations: validation.Violations,
	}
}

func doubleCrew(v model.ComplianceValidationResult, d model.AdjustedDurations, costs model.StaffingCostParameters) model.AlternativeOption {
	amplitudeHours := d.TotalAmplitudeMinutes / 60
	feasible := amplitudeHours <= DoubleCrewAmplitudeHours
	extra := money.Round2(math.Max(0, amplitudeHours-DoubleCrewIncludedHours) * costs.DriverHourlyCost)

	remaining := []model.ViolationType{}
	if v.HasViolation(model.ViolationDrivingTimeExceeded) {
		remaining = append(remaining, model.ViolationDrivingTimeExceeded)
	}
	if !feasible && v.HasViolation(model.ViolationAmplitudeExceeded) {
		remaining = append(remaining, model.ViolationAmplitudeExceeded)
	}

	return model.AlternativeOption{
		Type:             model.AlternativeDoubleCrew,
		Title:            "Double crew",
		Description:      fmt.Sprintf("Two drivers on board extend the working day up to %gh", DoubleCrewAmplitudeHours),
		IsFeasible:       feasible,
		WouldBeCompliant: feasible && len(remaining) == 0,
		AdditionalCost: model.AdditionalCost{
			Total:     extra,
			Breakdown: model.AdditionalCostBreakdown{ExtraDriverCost: extra},
		},
		AdjustedSchedule: model.AdjustedSchedule{
			DaysRequired:    singleDay,
			DriversRequired: doubleCrewDriverCount,
		},
		RemainingViolations: remaining,
	}
}

func relayDriver(v model.ComplianceValidationResult, rules model.RSERules, d model.AdjustedDurations, costs model.StaffingCostParameters) model.AlternativeOption {
	perDriver := d.TotalDrivingMinutes / relayDriverCount
	feasible := perDriver <= rules.MaxDailyDrivingHours*60
	extra := money.Round2(d.TotalDrivingMinutes / 60 / relayDriverCount * costs.DriverHourlyCost)

	remaining := []model.ViolationType{}
	if !feasible && v.HasViolation(model.ViolationDrivingTimeExceeded) {
		remaining = append(remaining, model.ViolationDrivingTimeExceeded)
	}
	if v.HasViolation(model.ViolationAmplitudeExceeded) {
		remaining = append(remaining, model.ViolationAmplitudeExceeded)
	}

	return model.AlternativeOption{
		Type:             model.AlternativeRelayDriver,
		Title:            "Relay driver",
		Description:      fmt.Sprintf("A second driver takes over midway, %.2fh of driving each", money.Round2(perDriver/60)),
		IsFeasible:       feasible,
		WouldBeCompliant: feasible && len(remaining) == 0,
		AdditionalCost: model.AdditionalCost{
			Total:     extra,
			Breakdown: model.AdditionalCostBreakdown{ExtraDriverCost: extra},
		},
		AdjustedSchedule: model.AdjustedSchedule{
			DaysRequired:    singleDay,
			DriversRequired: relayDriverCount,
		},
		RemainingViolations: remaining,
	}
}

func multiDay(v model.ComplianceValidationResult, rules model.RSERules, d model.AdjustedDurations, costs model.StaffingCostParameters) model.AlternativeOption {
	// Days are sized on amplitude alone.
	days := singleDay
	if rules.MaxDailyAmplitudeHours > 0 {
		days = max(days, int(math.Ceil(d.TotalAmplitudeMinutes/60/rules.MaxDailyAmplitudeHours)))
	}
	feasible := days <= MultiDayMaxDays
	nights := days - 1

	breakdown := model.AdditionalCostBreakdown{
		HotelCost:       money.Round2(float64(nights) * costs.HotelCostPerNight),
		MealCost:        money.Round2(float64(days) * costs.MealCostPerDay),
		ExtraDriverCost: money.Round2(float64(nights) * MultiDayExtraDriverHours * costs.DriverHourlyCost),
	}

	remaining := []model.ViolationType{}
	if !feasible {
		for _, violation := range v.Violations {
			remaining = append(remaining, violation.Type)
		}
	}

	return model.AlternativeOption{
		Type:             model.AlternativeMultiDay,
		Title:            "Multi-day trip",
		Description:      fmt.Sprintf("Split the trip over %d days with %d hotel night(s)", days, nights),
		IsFeasible:       feasible,
		WouldBeCompliant: feasible,
		AdditionalCost: model.AdditionalCost{
			Total:     money.Round2(breakdown.HotelCost + breakdown.MealCost + breakdown.ExtraDriverCost),
			Breakdown: breakdown,
		},
		AdjustedSchedule: model.AdjustedSchedule{
			DaysRequired:    days,
			DriversRequired: singleDriverCount,
			HotelNights:     nights,
		},
		RemainingViolations: remaining,
	}
}
