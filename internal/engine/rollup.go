package engine

// Summary holds the cost rollup over a bill of quantities: the base material
// total plus additive markup percentages for unknowns, professional fees, and
// contingency. Percentages are fractions (0.10 = 10%) and are independent,
// not compounded.
type Summary struct {
	BaseTotal       float64 `json:"base_total"`
	MarginPct       float64 `json:"margin_pct"`
	FeePct          float64 `json:"fee_pct"`
	ContingencyPct  float64 `json:"contingency_pct"`
	MarginCost      float64 `json:"margin_cost"`
	FeeCost         float64 `json:"fee_cost"`
	ContingencyCost float64 `json:"contingency_cost"`
	GrandTotal      float64 `json:"grand_total"`
}

// PhaseTotal is the summed cost of all BOQ rows sharing a phase.
type PhaseTotal struct {
	Phase     string  `json:"phase"`
	PhaseCost float64 `json:"phase_cost"`
}

// Rollup computes the grand total from the BOQ rows and the three markup
// fractions. Negative fractions are clamped to zero; fractions above 1 are
// accepted arithmetically.
func Rollup(rows []BOQRow, marginPct, feePct, contingencyPct float64) Summary {
	if marginPct < 0 {
		marginPct = 0
	}
	if feePct < 0 {
		feePct = 0
	}
	if contingencyPct < 0 {
		contingencyPct = 0
	}

	var base float64
	for _, r := range rows {
		base += r.TotalCost
	}

	s := Summary{
		BaseTotal:       base,
		MarginPct:       marginPct,
		FeePct:          feePct,
		ContingencyPct:  contingencyPct,
		MarginCost:      base * marginPct,
		FeeCost:         base * feePct,
		ContingencyCost: base * contingencyPct,
	}
	s.GrandTotal = base + s.MarginCost + s.FeeCost + s.ContingencyCost
	return s
}

// PhaseTotals groups row costs by phase, preserving the order phases first
// appear in the BOQ.
func PhaseTotals(rows []BOQRow) []PhaseTotal {
	index := make(map[string]int, len(rows))
	var totals []PhaseTotal
	for _, r := range rows {
		if i, ok := index[r.Phase]; ok {
			totals[i].PhaseCost += r.TotalCost
			continue
		}
		index[r.Phase] = len(totals)
		totals = append(totals, PhaseTotal{Phase: r.Phase, PhaseCost: r.TotalCost})
	}
	return totals
}

// ReorderPhases rearranges phase totals into the given build order. Phases
// named in the order come first; any remaining phases keep their relative
// order and follow. Unknown names are ignored.
func ReorderPhases(totals []PhaseTotal, order []string) []PhaseTotal {
	byPhase := make(map[string]PhaseTotal, len(totals))
	for _, pt := range totals {
		byPhase[pt.Phase] = pt
	}
	out := make([]PhaseTotal, 0, len(totals))
	taken := make(map[string]bool, len(order))
	for _, phase := range order {
		if pt, ok := byPhase[phase]; ok && !taken[phase] {
			out = append(out, pt)
			taken[phase] = true
		}
	}
	for _, pt := range totals {
		if !taken[pt.Phase] {
			out = append(out, pt)
		}
	}
	return out
}
