package multiplier

import (
	"fmt"
	"sort"
	"time"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// ApplySeasonalMultiplier applies m when pickupAt falls within its date range.
// Dates are compared in the location of pickupAt.
func ApplySeasonalMultiplier(price float64, pickupAt time.Time, m model.SeasonalMultiplier) Result {
	if !SeasonalApplies(pickupAt, m) {
		return unchanged(price)
	}

	adjusted := money.Round2(price * m.Multiplier)
	return Result{
		AdjustedPrice: adjusted,
		AppliedRule: &model.AppliedRule{
			Type:        model.RuleSeasonal,
			RuleID:      m.ID.String(),
			Description: fmt.Sprintf("Seasonal multiplier %s (x%.2f)", m.Name, m.Multiplier),
			PriceBefore: price,
			PriceAfter:  adjusted,
			Multiplier:  ptr(m.Multiplier),
		},
	}
}

// SeasonalApplies reports whether the pickup date falls in the active
// multiplier's inclusive date range.
func SeasonalApplies(pickupAt time.Time, m model.SeasonalMultiplier) bool {
	if !m.IsActive {
		return false
	}
	day := dateOnly(pickupAt)
	return !day.Before(dateOnly(m.StartDate)) && !day.After(dateOnly(m.EndDate))
}

// ApplyAdvancedRate applies a night or weekend rate when pickupAt matches it.
func ApplyAdvancedRate(price float64, pickupAt time.Time, rate model.AdvancedRate) Result {
	if !AdvancedRateApplies(pickupAt, rate) {
		return unchanged(price)
	}

	rule := model.AppliedRule{
		Type:        model.RuleAdvancedRate,
		RuleID:      rate.ID.String(),
		PriceBefore: price,
	}
	switch rate.AdjustmentType {
	case model.AdjustmentPercentage:
		m := 1 + rate.Value/100
		rule.PriceAfter = money.Round2(price * m)
		rule.Multiplier = ptr(m)
		rule.Description = fmt.Sprintf("%s rate %s (%+.2f%%)", rate.AppliesTo, rate.Name, rate.Value)
	case model.AdjustmentFixedAmount:
		rule.PriceAfter = money.Round2(price + rate.Value)
		rule.Amount = ptr(rate.Value)
		rule.Description = fmt.Sprintf("%s rate %s (%+.2f EUR)", rate.AppliesTo, rate.Name, rate.Value)
	default:
		return unchanged(price)
	}

	return Result{AdjustedPrice: rule.PriceAfter, AppliedRule: &rule}
}

// AdvancedRateApplies reports whether an active night or weekend rate covers
// pickupAt. Weekend rates default to Saturday and Sunday.
func AdvancedRateApplies(pickupAt time.Time, rate model.AdvancedRate) bool {
	if !rate.IsActive {
		return false
	}

	switch rate.AppliesTo {
	case model.AdvancedRateNight:
		if len(rate.DaysOfWeek) > 0 && !containsDay(rate.DaysOfWeek, pickupAt.Weekday()) {
			return false
		}
		return inWindow(pickupAt, rate.StartTime, rate.EndTime)
	case model.AdvancedRateWeekend:
		days := rate.DaysOfWeek
		if len(days) == 0 {
			days = []int{int(time.Saturday), int(time.Sunday)}
		}
		if !containsDay(days, pickupAt.Weekday()) {
			return false
		}
		if rate.StartTime == "" && rate.EndTime == "" {
			return true
		}
		return inWindow(pickupAt, rate.StartTime, rate.EndTime)
	default:
		return false
	}
}

// ApplyTimeBasedAdjustments applies every matching seasonal multiplier and
// advanced rate, highest priority first, rounding after each step. pickupAt
// is evaluated in loc.
func ApplyTimeBasedAdjustments(
	price float64,
	pickupAt time.Time,
	loc *time.Location,
	seasonal []model.SeasonalMultiplier,
	advanced []model.AdvancedRate,
) ChainResult {
	if loc != nil {
		pickupAt = pickupAt.In(loc)
	}

	type step struct {
		priority int
		apply    func(float64) Result
	}
	steps := make([]step, 0, len(seasonal)+len(advanced))
	for _, m := range seasonal {
		if SeasonalApplies(pickupAt, m) {
			steps = append(steps, step{priority: m.Priority, apply: func(p float64) Result {
				return ApplySeasonalMultiplier(p, pickupAt, m)
			}})
		}
	}
	for _, r := range advanced {
		if AdvancedRateApplies(pickupAt, r) {
			steps = append(steps, step{priority: r.Priority, apply: func(p float64) Result {
				return ApplyAdvancedRate(p, pickupAt, r)
			}})
		}
	}
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].priority > steps[j].priority
	})

	out := ChainResult{AdjustedPrice: price, AppliedRules: []model.AppliedRule{}}
	for _, s := range steps {
		res := s.apply(out.AdjustedPrice)
		if res.AppliedRule == nil {
			continue
		}
		out.AdjustedPrice = res.AdjustedPrice
		out.AppliedRules = model.AppendRules(out.AppliedRules, *res.AppliedRule)
	}
	return out
}

func inWindow(t time.Time, start, end string) bool {
	s, ok := parseClock(start)
	if !ok {
		return false
	}
	e, ok := parseClock(end)
	if !ok {
		return false
	}
	m := t.Hour()*60 + t.Minute()
	if s <= e {
		return m >= s && m < e
	}
	return m >= s || m < e
}

func parseClock(v string) (int, bool) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func containsDay(days []int, d time.Weekday) bool {
	for _, day := range days {
		if day == int(d) {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
