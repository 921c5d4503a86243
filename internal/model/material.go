package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Construction phases used to group costs and sequence funding.
const (
	PhaseFoundation = "Foundation"
	PhaseStructure  = "Structure"
	PhaseRoofing    = "Roofing"
	PhaseFinishing  = "Finishing"
	PhaseExternal   = "External"
	PhaseMisc       = "Misc"
	PhaseLabor      = "Labor"
)

// Phases lists all known phases in conventional build order.
var Phases = []string{
	PhaseFoundation,
	PhaseStructure,
	PhaseRoofing,
	PhaseFinishing,
	PhaseExternal,
	PhaseMisc,
	PhaseLabor,
}

// MaterialRecord describes one catalog entry: a material or labour item with
// its unit price and the amount consumed per square meter of floor area.
// Fixture-only items (doors, sanitary ware) carry a consumption of zero and
// are pulled in by room templates instead.
type MaterialRecord struct {
	Item             string  `json:"item"`
	Unit             string  `json:"unit"`
	Price            float64 `json:"price"`
	Phase            string  `json:"phase"`
	ConsumptionPerM2 float64 `json:"consumption_per_m2"`
}

// UnmarshalJSON decodes a material record tolerantly: numeric fields accept
// JSON numbers or numeric strings, and anything malformed coerces to zero so
// a hand-edited catalog file never fails the load.
func (m *MaterialRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Item             string          `json:"item"`
		Unit             string          `json:"unit"`
		Price            json.RawMessage `json:"price"`
		Phase            string          `json:"phase"`
		ConsumptionPerM2 json.RawMessage `json:"consumption_per_m2"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Item = raw.Item
	m.Unit = raw.Unit
	m.Phase = raw.Phase
	m.Price = coerceNumber(raw.Price)
	m.ConsumptionPerM2 = coerceNumber(raw.ConsumptionPerM2)
	return nil
}

// coerceNumber parses a raw JSON value as a float64, accepting numbers and
// numeric strings. Missing or malformed values become 0.
func coerceNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// CopyMaterials creates a copy of a materials slice.
func CopyMaterials(materials []MaterialRecord) []MaterialRecord {
	if materials == nil {
		return []MaterialRecord{}
	}
	cp := make([]MaterialRecord, len(materials))
	copy(cp, materials)
	return cp
}

// DefaultMaterials returns the built-in materials catalog. Prices are in GHS
// and consumption rates are per square meter of total floor area.
func DefaultMaterials() []MaterialRecord {
	return []MaterialRecord{
		// Foundation
		{Item: "Cement (50kg bag)", Unit: "bag", Price: 125.0, Phase: PhaseFoundation, ConsumptionPerM2: 0.40},
		{Item: "Sand (m³)", Unit: "m3", Price: 150.0, Phase: PhaseFoundation, ConsumptionPerM2: 0.03},
		{Item: "Coarse aggregate (m³)", Unit: "m3", Price: 300.0, Phase: PhaseFoundation, ConsumptionPerM2: 0.02},
		{Item: "Rebar (steel) per meter", Unit: "m", Price: 22.0, Phase: PhaseFoundation, ConsumptionPerM2: 1.0},
		{Item: "Binding wire (kg)", Unit: "kg", Price: 18.0, Phase: PhaseFoundation, ConsumptionPerM2: 0.08},
		{Item: "Formwork plywood (m²)", Unit: "m2", Price: 60.0, Phase: PhaseFoundation, ConsumptionPerM2: 0.05},
		{Item: "Formwork oil (ltr)", Unit: "ltr", Price: 25.0, Phase: PhaseFoundation, ConsumptionPerM2: 0.005},

		// Structure / masonry
		{Item: "Concrete block (unit)", Unit: "unit", Price: 6.5, Phase: PhaseStructure, ConsumptionPerM2: 10.0},
		{Item: "Mortar (cement bag equiv)", Unit: "bag", Price: 125.0, Phase: PhaseStructure, ConsumptionPerM2: 0.12},
		{Item: "Tie wire (kg)", Unit: "kg", Price: 18.0, Phase: PhaseStructure, ConsumptionPerM2: 0.02},
		{Item: "Scaffolding (rental per m2-eq)", Unit: "m2-eq", Price: 40.0, Phase: PhaseStructure, ConsumptionPerM2: 0.05},
		{Item: "Concrete pump (rental per m2-eq)", Unit: "m2-eq", Price: 12.0, Phase: PhaseStructure, ConsumptionPerM2: 0.02},

		// Roofing
		{Item: "Roofing sheet (m²)", Unit: "m2", Price: 90.0, Phase: PhaseRoofing, ConsumptionPerM2: 1.05},
		{Item: "Timber (lm)", Unit: "lm", Price: 40.0, Phase: PhaseRoofing, ConsumptionPerM2: 0.20},
		{Item: "Roof nails (kg)", Unit: "kg", Price: 40.0, Phase: PhaseRoofing, ConsumptionPerM2: 0.02},
		{Item: "Anti-rust paint (ltr)", Unit: "ltr", Price: 70.0, Phase: PhaseRoofing, ConsumptionPerM2: 0.02},
		{Item: "Roofing felt (m²)", Unit: "m2", Price: 20.0, Phase: PhaseRoofing, ConsumptionPerM2: 0.95},
		{Item: "Truss (lm)", Unit: "lm", Price: 85.0, Phase: PhaseRoofing, ConsumptionPerM2: 0.06},
		{Item: "Gutter (m)", Unit: "m", Price: 45.0, Phase: PhaseRoofing, ConsumptionPerM2: 0.05},

		// Finishing
		{Item: "Floor tiles (m²)", Unit: "m2", Price: 80.0, Phase: PhaseFinishing, ConsumptionPerM2: 1.0},
		{Item: "Tile adhesive (bag)", Unit: "bag", Price: 120.0, Phase: PhaseFinishing, ConsumptionPerM2: 0.03},
		{Item: "Grout (kg)", Unit: "kg", Price: 25.0, Phase: PhaseFinishing, ConsumptionPerM2: 0.6},
		{Item: "Wall plaster (m²)", Unit: "m2", Price: 25.0, Phase: PhaseFinishing, ConsumptionPerM2: 1.0},
		{Item: "POP (kg)", Unit: "kg", Price: 8.0, Phase: PhaseFinishing, ConsumptionPerM2: 0.8},
		{Item: "Paint (ltr)", Unit: "ltr", Price: 40.0, Phase: PhaseFinishing, ConsumptionPerM2: 0.08},
		{Item: "Skirting (lm)", Unit: "lm", Price: 20.0, Phase: PhaseFinishing, ConsumptionPerM2: 0.15},
		{Item: "Ceiling board (m²)", Unit: "m2", Price: 120.0, Phase: PhaseFinishing, ConsumptionPerM2: 1.0},

		// Doors & windows
		{Item: "External door (each)", Unit: "each", Price: 1800.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},
		{Item: "Internal door (each)", Unit: "each", Price: 700.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},
		{Item: "Window (each)", Unit: "each", Price: 450.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},
		{Item: "Glass (m²)", Unit: "m2", Price: 120.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},

		// Electrical
		{Item: "Wiring roll (100m)", Unit: "roll", Price: 450.0, Phase: PhaseFinishing, ConsumptionPerM2: 0.02},
		{Item: "Switch/socket (each)", Unit: "each", Price: 40.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},
		{Item: "DB board (each)", Unit: "each", Price: 1200.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},
		{Item: "Light fixture (each)", Unit: "each", Price: 150.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},

		// Plumbing
		{Item: "PVC pipe (10ft)", Unit: "piece", Price: 150.0, Phase: PhaseFinishing, ConsumptionPerM2: 0.02},
		{Item: "Toilet (WC) (each)", Unit: "each", Price: 700.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},
		{Item: "Wash basin (each)", Unit: "each", Price: 450.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},
		{Item: "Shower set (each)", Unit: "each", Price: 600.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},
		{Item: "Kitchen sink (each)", Unit: "each", Price: 600.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},
		{Item: "Kitchen cabinet (per lm)", Unit: "lm", Price: 900.0, Phase: PhaseFinishing, ConsumptionPerM2: 0},

		// External / misc
		{Item: "Fence block (unit)", Unit: "unit", Price: 6.0, Phase: PhaseExternal, ConsumptionPerM2: 0},
		{Item: "Gate (each)", Unit: "each", Price: 4000.0, Phase: PhaseExternal, ConsumptionPerM2: 0},
		{Item: "Paving stone (m²)", Unit: "m2", Price: 120.0, Phase: PhaseExternal, ConsumptionPerM2: 0},
		{Item: "Water tank (5000L)", Unit: "each", Price: 5000.0, Phase: PhaseExternal, ConsumptionPerM2: 0},

		// Fasteners
		{Item: "Nails / screws (kg)", Unit: "kg", Price: 30.0, Phase: PhaseMisc, ConsumptionPerM2: 0.04},
		{Item: "Adhesive / sealant (ltr)", Unit: "ltr", Price: 60.0, Phase: PhaseMisc, ConsumptionPerM2: 0.02},
		{Item: "Paint brushes / rollers (set)", Unit: "set", Price: 120.0, Phase: PhaseMisc, ConsumptionPerM2: 0.001},

		// Labour (GHS per m2)
		{Item: "Masonry labour (GHS/m2)", Unit: "GHS/m2", Price: 120.0, Phase: PhaseLabor, ConsumptionPerM2: 1.0},
		{Item: "Carpentry labour (GHS/m2)", Unit: "GHS/m2", Price: 80.0, Phase: PhaseLabor, ConsumptionPerM2: 1.0},
		{Item: "Electrical labour (GHS/m2)", Unit: "GHS/m2", Price: 40.0, Phase: PhaseLabor, ConsumptionPerM2: 1.0},
		{Item: "Plumbing labour (GHS/m2)", Unit: "GHS/m2", Price: 35.0, Phase: PhaseLabor, ConsumptionPerM2: 1.0},
	}
}
