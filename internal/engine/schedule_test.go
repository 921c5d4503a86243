package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BuildEst/internal/model"
)

func TestScheduleSinglePhaseNoInflation(t *testing.T) {
	phases := []PhaseTotal{{Phase: model.PhaseFoundation, PhaseCost: 1200}}
	entries := Schedule(phases, 0, 400, 0)

	require.Len(t, entries, 1)
	e := entries[0]
	assert.InDelta(t, 1200.0, e.BaseCost, 1e-9)
	assert.InDelta(t, 1200.0, e.AfterUpfront, 1e-9)
	assert.InDelta(t, 1200.0, e.InflatedCost, 1e-9)
	assert.InDelta(t, 3.0, e.MonthsNeeded, 1e-9)
	assert.Zero(t, e.StartMonth)
	assert.InDelta(t, 3.0, e.EndMonth, 1e-9)
	assert.InDelta(t, 3.0, CompletionMonth(entries), 1e-9)
}

func TestScheduleUpfrontReducesFirstPhase(t *testing.T) {
	phases := []PhaseTotal{{Phase: model.PhaseFoundation, PhaseCost: 1200}}
	entries := Schedule(phases, 500, 400, 0)

	require.Len(t, entries, 1)
	assert.InDelta(t, 700.0, entries[0].AfterUpfront, 1e-9)
	assert.InDelta(t, 700.0/400.0, entries[0].MonthsNeeded, 1e-9)
}

func TestScheduleUpfrontConsumedInBuildOrder(t *testing.T) {
	phases := []PhaseTotal{
		{Phase: model.PhaseFoundation, PhaseCost: 1000},
		{Phase: model.PhaseStructure, PhaseCost: 800},
		{Phase: model.PhaseRoofing, PhaseCost: 600},
	}
	entries := Schedule(phases, 1500, 500, 0)

	require.Len(t, entries, 3)
	assert.Zero(t, entries[0].AfterUpfront, "first phase fully covered")
	assert.InDelta(t, 300.0, entries[1].AfterUpfront, 1e-9, "remainder of upfront applies to second phase")
	assert.InDelta(t, 600.0, entries[2].AfterUpfront, 1e-9, "upfront exhausted before third phase")

	assert.Zero(t, entries[0].MonthsNeeded)
	assert.Zero(t, entries[1].StartMonth, "a fully-funded phase takes no time")
}

func TestScheduleUpfrontCoversEverything(t *testing.T) {
	phases := []PhaseTotal{
		{Phase: model.PhaseFoundation, PhaseCost: 1000},
		{Phase: model.PhaseStructure, PhaseCost: 800},
	}
	// Zero monthly savings, but nothing left to save for.
	entries := Schedule(phases, 5000, 0, 10)

	for _, e := range entries {
		assert.Zero(t, e.MonthsNeeded, e.Phase)
		assert.Zero(t, e.EndMonth, e.Phase)
	}
	assert.Zero(t, CompletionMonth(entries))
}

func TestScheduleZeroSavingsIsUnfundable(t *testing.T) {
	phases := []PhaseTotal{
		{Phase: model.PhaseFoundation, PhaseCost: 1000},
		{Phase: model.PhaseStructure, PhaseCost: 800},
	}
	entries := Schedule(phases, 200, 0, 10)

	require.Len(t, entries, 2)
	assert.True(t, math.IsInf(entries[0].MonthsNeeded, 1))
	assert.True(t, math.IsInf(entries[0].EndMonth, 1))
	// Every later phase inherits the infinite timeline.
	assert.True(t, math.IsInf(entries[1].StartMonth, 1))
	assert.True(t, math.IsInf(entries[1].EndMonth, 1))
	assert.True(t, math.IsInf(CompletionMonth(entries), 1))
}

func TestScheduleInflationCompoundsFromStartMonth(t *testing.T) {
	phases := []PhaseTotal{
		{Phase: model.PhaseFoundation, PhaseCost: 1200},
		{Phase: model.PhaseStructure, PhaseCost: 1000},
	}
	// First phase takes 12 months at 100/month; second starts at month 12,
	// so 10% annual inflation scales it by exactly 1.1.
	entries := Schedule(phases, 0, 100, 10)

	require.Len(t, entries, 2)
	assert.InDelta(t, 12.0, entries[0].EndMonth, 1e-9)
	assert.InDelta(t, 12.0, entries[1].StartMonth, 1e-9)
	assert.InDelta(t, 1100.0, entries[1].InflatedCost, 1e-9)
	assert.InDelta(t, 11.0, entries[1].MonthsNeeded, 1e-9)
}

func TestScheduleNoInflationOnFirstPhase(t *testing.T) {
	phases := []PhaseTotal{{Phase: model.PhaseFoundation, PhaseCost: 1000}}
	entries := Schedule(phases, 0, 100, 25)
	require.Len(t, entries, 1)
	assert.InDelta(t, 1000.0, entries[0].InflatedCost, 1e-9, "month 0 means factor 1")
}

func TestScheduleClampsNegativeInputs(t *testing.T) {
	phases := []PhaseTotal{{Phase: model.PhaseFoundation, PhaseCost: -500}}
	entries := Schedule(phases, -100, -50, 0)

	require.Len(t, entries, 1)
	assert.Zero(t, entries[0].BaseCost)
	assert.Zero(t, entries[0].MonthsNeeded)
}

func TestScheduleMonotonicMonths(t *testing.T) {
	phases := PhaseTotals([]BOQRow{
		{Item: "a", TotalCost: 700, Phase: model.PhaseFoundation},
		{Item: "b", TotalCost: 900, Phase: model.PhaseStructure},
		{Item: "c", TotalCost: 400, Phase: model.PhaseRoofing},
		{Item: "d", TotalCost: 1100, Phase: model.PhaseFinishing},
	})
	entries := Schedule(phases, 300, 250, 12)

	prevEnd := 0.0
	for _, e := range entries {
		assert.InDelta(t, prevEnd, e.StartMonth, 1e-9, e.Phase)
		assert.GreaterOrEqual(t, e.EndMonth, e.StartMonth, e.Phase)
		prevEnd = e.EndMonth
	}
}

func TestTotalInflated(t *testing.T) {
	entries := []FundingEntry{
		{Phase: model.PhaseFoundation, InflatedCost: 1000},
		{Phase: model.PhaseStructure, InflatedCost: 550.5},
	}
	assert.InDelta(t, 1550.5, TotalInflated(entries), 1e-9)
	assert.Zero(t, TotalInflated(nil))
}

func TestSavingsFromIncome(t *testing.T) {
	assert.InDelta(t, 1500.0, SavingsFromIncome(5000, 30), 1e-9)
	assert.Zero(t, SavingsFromIncome(-1, 30))
	assert.Zero(t, SavingsFromIncome(5000, -30))
	assert.Zero(t, SavingsFromIncome(5000, 0))
}

func TestCumulativeCurve(t *testing.T) {
	phases := []PhaseTotal{{Phase: model.PhaseFoundation, PhaseCost: 1200}}
	entries := Schedule(phases, 0, 400, 0)
	points := CumulativeCurve(entries, 0, 400)

	// Months 0..3 inclusive.
	require.Len(t, points, 4)
	assert.Zero(t, points[0].Required)
	assert.InDelta(t, 400.0, points[1].Required, 1e-9, "one third through the phase")
	assert.InDelta(t, 1200.0, points[3].Required, 1e-9)
	for _, p := range points {
		assert.InDelta(t, float64(p.Month)*400, p.Available, 1e-9)
		assert.GreaterOrEqual(t, p.Available, p.Required-1e-9, "savings plan keeps pace with requirements")
	}
}

func TestCumulativeCurveUnfundableTruncates(t *testing.T) {
	entries := Schedule([]PhaseTotal{{Phase: model.PhaseFoundation, PhaseCost: 1000}}, 0, 0, 0)
	points := CumulativeCurve(entries, 0, 0)
	assert.Len(t, points, 2, "infinite schedule collapses to a single-month span")
}

func TestCumulativeCurveEmptySchedule(t *testing.T) {
	points := CumulativeCurve(nil, 500, 100)
	require.Len(t, points, 2)
	assert.InDelta(t, 500.0, points[0].Available, 1e-9)
	assert.Zero(t, points[0].Required)
}
