package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtc-pricing-service/internal/model"
)

func serviceOnly(distanceKm, minutes float64) []model.Segment {
	return []model.Segment{{Name: model.SegmentService, DistanceKm: distanceKm, DurationMinutes: minutes}}
}

func heavy(segments []model.Segment) Input {
	return Input{
		RegulatoryCategory: model.RegulatoryCategoryHeavy,
		Segments:           segments,
		PickupAt:           time.Date(2026, 5, 12, 8, 0, 0, 0, time.UTC),
	}
}

func TestLightVehicleBypassesRules(t *testing.T) {
	in := heavy(serviceOnly(1500, 20*60))
	in.RegulatoryCategory = model.RegulatoryCategoryLight

	res := ValidateHeavyVehicleCompliance(in, model.DefaultHeavyVehicleRSERules)

	assert.True(t, res.IsCompliant)
	assert.Empty(t, res.RulesApplied)
	assert.NotNil(t, res.RulesApplied)
	assert.Nil(t, res.RulesUsed)
	assert.Empty(t, res.Violations)
}

func TestDrivingTimeBoundary(t *testing.T) {
	res := ValidateHeavyVehicleCompliance(heavy(serviceOnly(700, 600)), model.DefaultHeavyVehicleRSERules)
	assert.True(t, res.IsCompliant)
	require.Len(t, res.RulesApplied, 2)
	assert.Equal(t, model.RuleStatusWarning, res.RulesApplied[0].Status)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, model.WarningApproachingDrivingLimit, res.Warnings[0].Type)

	res = ValidateHeavyVehicleCompliance(heavy(serviceOnly(700, 601)), model.DefaultHeavyVehicleRSERules)
	assert.False(t, res.IsCompliant)
	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, model.ViolationDrivingTimeExceeded, v.Type)
	assert.Equal(t, 10.02, v.Actual)
	assert.Equal(t, 10.0, v.Limit)
	assert.Equal(t, "hours", v.Unit)
	assert.Equal(t, model.RuleStatusFail, res.RulesApplied[0].Status)
}

func TestElevenHourHeavyTrip(t *testing.T) {
	res := ValidateHeavyVehicleCompliance(heavy(serviceOnly(800, 660)), model.DefaultHeavyVehicleRSERules)

	assert.False(t, res.IsCompliant)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, model.ViolationDrivingTimeExceeded, res.Violations[0].Type)
	assert.Equal(t, 10.0, res.Violations[0].Limit)
	assert.Equal(t, 11.0, res.Violations[0].Actual)
	assert.Equal(t, 90.0, res.AdjustedDurations.InjectedBreakMinutes)
	assert.Equal(t, 750.0, res.AdjustedDurations.TotalAmplitudeMinutes)
	require.NotNil(t, res.RulesUsed)
	assert.Equal(t, "D", res.RulesUsed.LicenseCategory)

	alts := GenerateAlternatives(res, model.StaffingCostParameters{DriverHourlyCost: 25, HotelCostPerNight: 120, MealCostPerDay: 30})
	require.True(t, alts.HasAlternatives)

	var relay *model.AlternativeOption
	for i := range alts.Alternatives {
		if alts.Alternatives[i].Type == model.AlternativeRelayDriver {
			relay = &alts.Alternatives[i]
		}
	}
	require.NotNil(t, relay)
	assert.True(t, relay.IsFeasible)
	assert.True(t, relay.WouldBeCompliant)
	assert.Equal(t, 137.5, relay.AdditionalCost.Total)
	assert.Equal(t, 2, relay.AdjustedSchedule.DriversRequired)

	// 12.5h of amplitude fits in one 14h day: meals only.
	multi := alts.Alternatives[2]
	require.Equal(t, model.AlternativeMultiDay, multi.Type)
	assert.True(t, multi.IsFeasible)
	assert.True(t, multi.WouldBeCompliant)
	assert.Equal(t, 1, multi.AdjustedSchedule.DaysRequired)
	assert.Equal(t, 0, multi.AdjustedSchedule.HotelNights)
	assert.Equal(t, 30.0, multi.AdditionalCost.Total)

	selection := SelectBestStaffingPlan(alts, model.PolicyCheapest)
	require.NotNil(t, selection.SelectedPlan)
	assert.Equal(t, model.AlternativeMultiDay, selection.SelectedPlan.Type)
	assert.True(t, selection.IsRequired)

	selection = SelectBestStaffingPlan(alts, model.PolicyPreferInternal)
	require.NotNil(t, selection.SelectedPlan)
	assert.Equal(t, model.AlternativeMultiDay, selection.SelectedPlan.Type)
}

func TestMultiDaySizedOnAmplitude(t *testing.T) {
	costs := model.StaffingCostParameters{DriverHourlyCost: 25, HotelCostPerNight: 120, MealCostPerDay: 30}

	tests := []struct {
		name             string
		amplitudeMinutes float64
		wantDays         int
		wantFeasible     bool
		wantCost         float64
	}{
		{"one day", 14 * 60, 1, true, 30},
		{"just over one day", 14*60 + 1, 2, true, 380},
		{"three days", 42 * 60, 3, true, 730},
		{"four days", 42*60 + 1, 4, false, 1080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := model.DefaultHeavyVehicleRSERules
			validation := model.ComplianceValidationResult{
				RulesUsed:  &rules,
				Violations: []model.ComplianceViolation{{Type: model.ViolationAmplitudeExceeded}},
				AdjustedDurations: model.AdjustedDurations{
					TotalDrivingMinutes:   9 * 60,
					TotalAmplitudeMinutes: tt.amplitudeMinutes,
				},
			}

			multi := GenerateAlternatives(validation, costs).Alternatives[2]
			require.Equal(t, model.AlternativeMultiDay, multi.Type)
			assert.Equal(t, tt.wantDays, multi.AdjustedSchedule.DaysRequired)
			assert.Equal(t, tt.wantDays-1, multi.AdjustedSchedule.HotelNights)
			assert.Equal(t, tt.wantFeasible, multi.IsFeasible)
			assert.Equal(t, tt.wantFeasible, multi.WouldBeCompliant)
			assert.Equal(t, tt.wantCost, multi.AdditionalCost.Total)
		})
	}
}

func TestDoubleCrewAmplitudeBound(t *testing.T) {
	costs := model.StaffingCostParameters{DriverHourlyCost: 25}

	tests := []struct {
		name             string
		amplitudeMinutes float64
		violations       []model.ViolationType
		wantFeasible     bool
		wantCompliant    bool
		wantRemaining    []model.ViolationType
	}{
		{
			name:             "amplitude at 18h",
			amplitudeMinutes: 18 * 60,
			violations:       []model.ViolationType{model.ViolationAmplitudeExceeded},
			wantFeasible:     true,
			wantCompliant:    true,
			wantRemaining:    []model.ViolationType{},
		},
		{
			name:             "amplitude one minute over 18h",
			amplitudeMinutes: 18*60 + 1,
			violations:       []model.ViolationType{model.ViolationAmplitudeExceeded},
			wantFeasible:     false,
			wantCompliant:    false,
			wantRemaining:    []model.ViolationType{model.ViolationAmplitudeExceeded},
		},
		{
			name:             "driving time is not addressed",
			amplitudeMinutes: 12.5 * 60,
			violations:       []model.ViolationType{model.ViolationDrivingTimeExceeded},
			wantFeasible:     true,
			wantCompliant:    false,
			wantRemaining:    []model.ViolationType{model.ViolationDrivingTimeExceeded},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := model.DefaultHeavyVehicleRSERules
			validation := model.ComplianceValidationResult{
				RulesUsed:         &rules,
				AdjustedDurations: model.AdjustedDurations{TotalDrivingMinutes: 11 * 60, TotalAmplitudeMinutes: tt.amplitudeMinutes},
			}
			for _, v := range tt.violations {
				validation.Violations = append(validation.Violations, model.ComplianceViolation{Type: v})
			}

			crew := GenerateAlternatives(validation, costs).Alternatives[0]
			require.Equal(t, model.AlternativeDoubleCrew, crew.Type)
			assert.Equal(t, tt.wantFeasible, crew.IsFeasible)
			assert.Equal(t, tt.wantCompliant, crew.WouldBeCompliant)
			assert.Equal(t, tt.wantRemaining, crew.RemainingViolations)
		})
	}
}

func TestCalculateInjectedBreakMinutes(t *testing.T) {
	rules := model.RSERules{DrivingBlockHoursForBreak: 4.5, BreakMinutesPerDrivingBlock: 45}

	assert.Equal(t, 45.0, CalculateInjectedBreakMinutes(300, rules))
	assert.Equal(t, 90.0, CalculateInjectedBreakMinutes(600, rules))
	assert.Equal(t, 0.0, CalculateInjectedBreakMinutes(269, rules))
	assert.Equal(t, 0.0, CalculateInjectedBreakMinutes(600, model.RSERules{}))
}

func TestSpeedCapping(t *testing.T) {
	in := heavy(serviceOnly(200, 100))
	res := ValidateHeavyVehicleCompliance(in, model.DefaultHeavyVehicleRSERules)

	assert.True(t, res.AdjustedDurations.CappedSpeedApplied)
	assert.Equal(t, 141.18, res.AdjustedDurations.TotalDrivingMinutes)
	assert.Equal(t, 100.0, res.AdjustedDurations.OriginalDrivingMinutes)
	assert.Equal(t, 100.0, in.Segments[0].DurationMinutes)

	rules := model.DefaultHeavyVehicleRSERules
	rules.CappedAverageSpeedKmh = nil
	res = ValidateHeavyVehicleCompliance(in, rules)
	assert.False(t, res.AdjustedDurations.CappedSpeedApplied)
	assert.Equal(t, 100.0, res.AdjustedDurations.TotalDrivingMinutes)
}

func TestAmplitudeFromExplicitTimestamps(t *testing.T) {
	segments := []model.Segment{
		{Name: model.SegmentApproach, DistanceKm: 50, DurationMinutes: 60},
		{Name: model.SegmentService, DistanceKm: 300, DurationMinutes: 300},
		{Name: model.SegmentReturn, DistanceKm: 50, DurationMinutes: 60},
	}
	in := heavy(segments)
	dropoff := in.PickupAt.Add(12 * time.Hour)
	in.EstimatedDropoffAt = &dropoff

	res := ValidateHeavyVehicleCompliance(in, model.DefaultHeavyVehicleRSERules)
	assert.True(t, res.IsCompliant)
	assert.Equal(t, 840.0, res.AdjustedDurations.TotalAmplitudeMinutes)

	segments[0].DurationMinutes = 61
	res = ValidateHeavyVehicleCompliance(heavy(segments), model.DefaultHeavyVehicleRSERules)
	// without timestamps amplitude is driving plus breaks
	assert.Equal(t, 466.0, res.AdjustedDurations.TotalAmplitudeMinutes)

	in.Segments = segments
	res = ValidateHeavyVehicleCompliance(in, model.DefaultHeavyVehicleRSERules)
	assert.False(t, res.IsCompliant)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, model.ViolationAmplitudeExceeded, res.Violations[0].Type)
	assert.Equal(t, 14.0, res.Violations[0].Limit)
}
