package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/BuildEst/internal/model"
)

// BOQRow is one aggregated line of the bill of quantities.
type BOQRow struct {
	Item      string  `json:"item"`
	Unit      string  `json:"unit"`
	TotalQty  float64 `json:"total_qty"`
	UnitPrice float64 `json:"unit_price"`
	TotalCost float64 `json:"total_cost"`
	Phase     string  `json:"phase"`
}

// BOQResult holds the generated bill of quantities along with the computed
// total floor area and audit notes for any fixture that was resolved by
// substring fallback or could not be resolved at all.
type BOQResult struct {
	Rows      []BOQRow `json:"rows"`
	TotalArea float64  `json:"total_area"`
	Notes     []string `json:"notes,omitempty"`
}

// placeholderSuffix marks items synthesized for unresolved fixture labels.
const placeholderSuffix = " (user)"

// BuildBOQ computes the bill of quantities for the given room counts.
//
// Unit prices are scaled by locationMult and consumption rates by qualityMult.
// Every catalog item is seeded with its area-driven quantity
// (consumption_per_m2 * total area); fixtures from occupied rooms add their
// per-instance quantities on top, resolved against the catalog. Unresolved
// fixtures become zero-priced placeholder items so the omission stays visible.
// Rows sharing an identical (item, unit, price, phase) tuple are aggregated
// and zero-quantity rows are dropped.
//
// Negative room counts, multipliers, prices, and consumption rates are
// clamped to zero rather than rejected; the builder never fails.
func BuildBOQ(counts map[string]int, templates model.RoomTemplates, catalog []model.MaterialRecord, qualityMult, locationMult float64) BOQResult {
	if qualityMult < 0 {
		qualityMult = 0
	}
	if locationMult < 0 {
		locationMult = 0
	}

	// Normalize a working copy of the catalog: malformed values already
	// coerced to zero at load time, negatives clamped here before scaling.
	mat := make([]model.MaterialRecord, len(catalog))
	for i, rec := range catalog {
		if rec.Price < 0 {
			rec.Price = 0
		}
		if rec.ConsumptionPerM2 < 0 {
			rec.ConsumptionPerM2 = 0
		}
		rec.Price *= locationMult
		rec.ConsumptionPerM2 *= qualityMult
		mat[i] = rec
	}

	var totalArea float64
	for room, cnt := range counts {
		if cnt <= 0 {
			continue
		}
		if tpl, ok := templates[room]; ok {
			totalArea += float64(cnt) * tpl.AreaM2
		}
	}

	// Running quantities per item, in catalog order with placeholders after.
	qty := make(map[string]float64, len(mat))
	order := make([]string, 0, len(mat))
	for _, rec := range mat {
		if _, seen := qty[rec.Item]; !seen {
			order = append(order, rec.Item)
		}
		qty[rec.Item] += rec.ConsumptionPerM2 * totalArea
	}

	resolver := NewResolver(catalog)
	var notes []string
	for _, room := range sortedRooms(counts) {
		cnt := counts[room]
		if cnt <= 0 {
			continue
		}
		tpl, ok := templates[room]
		if !ok {
			continue
		}
		for _, label := range sortedFixtures(tpl.Fixtures) {
			fq := tpl.Fixtures[label]
			if fq <= 0 {
				continue
			}
			item, kind := resolver.Resolve(label)
			switch kind {
			case MatchNone:
				item = label + placeholderSuffix
				notes = append(notes, fmt.Sprintf("fixture %q not in catalog; added as zero-priced placeholder", label))
			case MatchSubstring:
				notes = append(notes, fmt.Sprintf("fixture %q resolved to %q by substring match", label, item))
			}
			if _, seen := qty[item]; !seen {
				order = append(order, item)
			}
			qty[item] += fq * float64(cnt)
		}
	}

	record := make(map[string]model.MaterialRecord, len(mat))
	for _, rec := range mat {
		if _, ok := record[rec.Item]; !ok {
			record[rec.Item] = rec
		}
	}

	rows := make([]BOQRow, 0, len(order))
	for _, item := range order {
		q := qty[item]
		if q <= 0 {
			continue
		}
		unit, price, phase := "each", 0.0, model.PhaseMisc
		if rec, ok := record[item]; ok {
			unit, price, phase = rec.Unit, rec.Price, rec.Phase
			if phase == "" {
				phase = model.PhaseMisc
			}
		}
		rows = append(rows, BOQRow{
			Item:      item,
			Unit:      unit,
			TotalQty:  q,
			UnitPrice: price,
			TotalCost: q * price,
			Phase:     phase,
		})
	}

	return BOQResult{
		Rows:      AggregateRows(rows),
		TotalArea: totalArea,
		Notes:     notes,
	}
}

// AggregateRows merges rows that share an identical (item, unit, price, phase)
// tuple by summing quantity and cost, preserving first-seen order. BuildBOQ
// output is already aggregated; this is exposed for combining the rows of
// separate builds.
func AggregateRows(rows []BOQRow) []BOQRow {
	type key struct {
		item, unit, phase string
		price             float64
	}
	index := make(map[key]int, len(rows))
	out := make([]BOQRow, 0, len(rows))
	for _, r := range rows {
		k := key{item: r.Item, unit: r.Unit, phase: r.Phase, price: r.UnitPrice}
		if i, ok := index[k]; ok {
			out[i].TotalQty += r.TotalQty
			out[i].TotalCost += r.TotalCost
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}
	return out
}

func sortedRooms(counts map[string]int) []string {
	rooms := make([]string, 0, len(counts))
	for room := range counts {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

func sortedFixtures(fixtures map[string]float64) []string {
	labels := make([]string, 0, len(fixtures))
	for label := range fixtures {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
