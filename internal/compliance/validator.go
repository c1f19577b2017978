// Package compliance checks heavy-vehicle trips against the RSE driving-time
// regulations and proposes staffing alternatives when a trip cannot be driven
// by a single driver in one day.
package compliance

import (
	"fmt"
	"math"
	"time"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// warningRatio is the share of a limit from which a rule reports WARNING.
const warningRatio = 0.9

// Input is the driven part of a trip as seen by the validator.
type Input struct {
	RegulatoryCategory model.RegulatoryCategory
	Segments           []model.Segment
	PickupAt           time.Time
	EstimatedDropoffAt *time.Time
}

// InputFromAnalysis builds the validator input from a computed trip analysis.
func InputFromAnalysis(analysis model.TripAnalysis, category model.RegulatoryCategory, trip model.TripInput) Input {
	return Input{
		RegulatoryCategory: category,
		Segments:           analysis.Segments.Present(),
		PickupAt:           trip.PickupAt,
		EstimatedDropoffAt: trip.EstimatedDropoffAt,
	}
}

// ValidateHeavyVehicleCompliance runs the full rule pipeline once. Violations
// are reported in the result, never as errors.
func ValidateHeavyVehicleCompliance(in Input, rules model.RSERules) model.ComplianceValidationResult {
	if in.RegulatoryCategory != model.RegulatoryCategoryHeavy {
		return model.ComplianceValidationResult{
			IsCompliant:  true,
			Violations:   []model.ComplianceViolation{},
			Warnings:     []model.ComplianceWarning{},
			RulesApplied: []model.RuleCheck{},
			AdjustedDurations: model.AdjustedDurations{
				TotalDrivingMinutes:    sumDurations(in.Segments),
				OriginalDrivingMinutes: sumDurations(in.Segments),
			},
		}
	}

	segments, capped := capSegmentSpeeds(in.Segments, rules.CappedAverageSpeedKmh)
	originalDriving := sumDurations(in.Segments)
	driving := sumDurations(segments)

	result := model.ComplianceValidationResult{
		Violations:   []model.ComplianceViolation{},
		Warnings:     []model.ComplianceWarning{},
		RulesApplied: []model.RuleCheck{},
		RulesUsed:    &rules,
	}

	check, violation, warning := checkLimit(
		model.ComplianceRuleDrivingTime, driving, rules.MaxDailyDrivingHours,
		model.ViolationDrivingTimeExceeded, model.WarningApproachingDrivingLimit, "Daily driving time",
	)
	result.RulesApplied = append(result.RulesApplied, check)
	if violation != nil {
		result.Violations = append(result.Violations, *violation)
	}
	if warning != nil {
		result.Warnings = append(result.Warnings, *warning)
	}

	breaks := CalculateInjectedBreakMinutes(driving, rules)
	amplitude := amplitudeMinutes(in, segments, driving, breaks)
	originalAmplitude := amplitudeMinutes(in, in.Segments, originalDriving, CalculateInjectedBreakMinutes(originalDriving, rules))

	check, violation, warning = checkLimit(
		model.ComplianceRuleAmplitude, amplitude, rules.MaxDailyAmplitudeHours,
		model.ViolationAmplitudeExceeded, model.WarningApproachingAmplitudeLimit, "Daily amplitude",
	)
	result.RulesApplied = append(result.RulesApplied, check)
	if violation != nil {
		result.Violations = append(result.Violations, *violation)
	}
	if warning != nil {
		result.Warnings = append(result.Warnings, *warning)
	}

	result.AdjustedDurations = model.AdjustedDurations{
		TotalDrivingMinutes:      money.Round2(driving),
		TotalAmplitudeMinutes:    money.Round2(amplitude),
		InjectedBreakMinutes:     breaks,
		CappedSpeedApplied:       capped,
		OriginalDrivingMinutes:   money.Round2(originalDriving),
		OriginalAmplitudeMinutes: money.Round2(originalAmplitude),
	}
	result.IsCompliant = len(result.Violations) == 0
	return result
}

// CalculateInjectedBreakMinutes returns the mandatory break time for a
// driving duration: one break per completed driving block.
func CalculateInjectedBreakMinutes(drivingMinutes float64, rules model.RSERules) float64 {
	block := rules.DrivingBlockHoursForBreak * 60
	if block <= 0 || drivingMinutes <= 0 {
		return 0
	}
	return math.Floor(drivingMinutes/block) * rules.BreakMinutesPerDrivingBlock
}

// capSegmentSpeeds slows down every segment whose implied average speed
// exceeds the cap. The input slice is not modified.
func capSegmentSpeeds(segments []model.Segment, capKmh *float64) ([]model.Segment, bool) {
	out := make([]model.Segment, len(segments))
	copy(out, segments)
	if capKmh == nil || *capKmh <= 0 {
		return out, false
	}

	capped := false
	for i, s := range out {
		if s.DistanceKm <= 0 {
			continue
		}
		minDuration := s.DistanceKm / *capKmh * 60
		if s.DurationMinutes < minDuration {
			out[i].DurationMinutes = minDuration
			capped = true
		}
	}
	return out, capped
}

// amplitudeMinutes prefers the explicit pickup/dropoff span, extended by the
// positioning legs, over driving plus breaks.
func amplitudeMinutes(in Input, segments []model.Segment, driving, breaks float64) float64 {
	if in.EstimatedDropoffAt != nil && in.EstimatedDropoffAt.After(in.PickupAt) {
		span := in.EstimatedDropoffAt.Sub(in.PickupAt).Minutes()
		for _, s := range segments {
			if s.Name == model.SegmentApproach || s.Name == model.SegmentReturn {
				span += s.DurationMinutes
			}
		}
		return span
	}
	return driving + breaks
}

func checkLimit(
	rule model.ComplianceRule,
	actualMinutes, limitHours float64,
	violationType model.ViolationType,
	warningType model.WarningType,
	label string,
) (model.RuleCheck, *model.ComplianceViolation, *model.ComplianceWarning) {
	actualHours := money.Round2(actualMinutes / 60)
	limitMinutes := limitHours * 60

	check := model.RuleCheck{
		Rule:      rule,
		Status:    model.RuleStatusPass,
		Threshold: limitHours,
		Actual:    actualHours,
		Unit:      "hours",
	}

	switch {
	case actualMinutes > limitMinutes:
		check.Status = model.RuleStatusFail
		return check, &model.ComplianceViolation{
			Type:    violationType,
			Message: fmt.Sprintf("%s of %.2fh exceeds the %gh limit", label, actualHours, limitHours),
			Actual:  actualHours,
			Limit:   limitHours,
			Unit:    "hours",
		}, nil
	case limitMinutes > 0 && actualMinutes >= limitMinutes*warningRatio:
		check.Status = model.RuleStatusWarning
		percent := money.Round2(actualMinutes / limitMinutes * 100)
		return check, nil, &model.ComplianceWarning{
			Type:           warningType,
			Message:        fmt.Sprintf("%s of %.2fh is at %.0f%% of the %gh limit", label, actualHours, percent, limitHours),
			Actual:         actualHours,
			Limit:          limitHours,
			PercentOfLimit: percent,
		}
	default:
		return check, nil, nil
	}
}

func sumDurations(segments []model.Segment) float64 {
	total := 0.0
	for _, s := range segments {
		total += s.DurationMinutes
	}
	return total
}
