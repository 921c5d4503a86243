package engine

import "math"

// FundingEntry is the funding plan for one construction phase. Months are
// fractional and chained: a phase starts the month the previous one is fully
// funded. When monthly savings are zero and cost remains, MonthsNeeded is
// +Inf; every later phase inherits infinite start and end months. Infinity is
// the documented "unfundable" terminal state, not an error.
type FundingEntry struct {
	Phase        string  `json:"phase"`
	BaseCost     float64 `json:"base_cost"`
	AfterUpfront float64 `json:"after_upfront"`
	InflatedCost float64 `json:"inflated_cost"`
	MonthsNeeded float64 `json:"months_needed"`
	StartMonth   float64 `json:"start_month"`
	EndMonth     float64 `json:"end_month"`
}

// Schedule computes a month-indexed funding timeline for the phases in the
// given build order. The upfront cash is consumed strictly in build order and
// never replenished. Inflation compounds from project start, anchored to each
// phase's scheduled start month: factor = (1 + pct/100)^(startMonth/12).
func Schedule(phases []PhaseTotal, upfrontCash, monthlySavings, annualInflationPct float64) []FundingEntry {
	if upfrontCash < 0 {
		upfrontCash = 0
	}
	if monthlySavings < 0 {
		monthlySavings = 0
	}

	remaining := upfrontCash
	cumMonth := 0.0
	entries := make([]FundingEntry, 0, len(phases))
	for _, pt := range phases {
		baseCost := pt.PhaseCost
		if baseCost < 0 {
			baseCost = 0
		}
		applied := math.Min(remaining, baseCost)
		afterUpfront := baseCost - applied
		remaining -= applied

		yearsUntilStart := cumMonth / 12.0
		inflationFactor := math.Pow(1+annualInflationPct/100.0, yearsUntilStart)
		inflated := afterUpfront * inflationFactor

		var months float64
		switch {
		case inflated == 0:
			months = 0
		case monthlySavings > 0:
			months = inflated / monthlySavings
		default:
			months = math.Inf(1)
		}

		start := cumMonth
		end := start + months
		entries = append(entries, FundingEntry{
			Phase:        pt.Phase,
			BaseCost:     baseCost,
			AfterUpfront: afterUpfront,
			InflatedCost: inflated,
			MonthsNeeded: months,
			StartMonth:   start,
			EndMonth:     end,
		})
		cumMonth = end
	}
	return entries
}

// CompletionMonth returns the month the last phase is fully funded, or +Inf
// when the schedule never completes. An empty schedule completes at month 0.
func CompletionMonth(entries []FundingEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	return entries[len(entries)-1].EndMonth
}

// TotalInflated sums the inflated cost of all phases.
func TotalInflated(entries []FundingEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.InflatedCost
	}
	return total
}

// SavingsFromIncome derives a monthly savings amount from a monthly income
// and the percentage of it set aside.
func SavingsFromIncome(monthlyIncome, percent float64) float64 {
	if monthlyIncome < 0 || percent < 0 {
		return 0
	}
	return monthlyIncome * percent / 100.0
}

// CurvePoint is one month on the savings-versus-requirement curve.
type CurvePoint struct {
	Month     int     `json:"month"`
	Available float64 `json:"available"`
	Required  float64 `json:"required"`
}

// CumulativeCurve tabulates, at each integer month, the cash available
// (upfront plus accrued savings) against the cumulative funding requirement.
// A phase contributes its full inflated cost once the month passes its end,
// a linear fraction while in progress, and nothing before it starts. The
// curve spans up to the last finite end month; an unfundable schedule is
// truncated to a single month.
func CumulativeCurve(entries []FundingEntry, upfrontCash, monthlySavings float64) []CurvePoint {
	span := 1
	var maxEnd float64
	for _, e := range entries {
		if e.EndMonth > maxEnd {
			maxEnd = e.EndMonth
		}
	}
	if !math.IsInf(maxEnd, 1) {
		span = int(math.Ceil(maxEnd))
		if span < 1 {
			span = 1
		}
	}

	points := make([]CurvePoint, 0, span+1)
	for m := 0; m <= span; m++ {
		month := float64(m)
		var required float64
		for _, e := range entries {
			switch {
			case month >= e.EndMonth:
				required += e.InflatedCost
			case month > e.StartMonth:
				if !math.IsInf(e.MonthsNeeded, 1) && e.MonthsNeeded > 0 {
					frac := math.Min(1, (month-e.StartMonth)/e.MonthsNeeded)
					required += e.InflatedCost * frac
				}
			}
		}
		points = append(points, CurvePoint{
			Month:     m,
			Available: month*monthlySavings + upfrontCash,
			Required:  required,
		})
	}
	return points
}
