package model

import "sort"

// RoomTemplate describes one room type: its floor area and the countable
// fixtures each instance of the room adds to the bill of quantities.
// Fixture keys are free-text labels resolved against the materials catalog.
type RoomTemplate struct {
	AreaM2   float64            `json:"area_m2"`
	Fixtures map[string]float64 `json:"fixtures"`
}

// Clone returns a deep copy of the template.
func (t RoomTemplate) Clone() RoomTemplate {
	fixtures := make(map[string]float64, len(t.Fixtures))
	for k, v := range t.Fixtures {
		fixtures[k] = v
	}
	return RoomTemplate{AreaM2: t.AreaM2, Fixtures: fixtures}
}

// RoomTemplates maps a room type name to its template.
type RoomTemplates map[string]RoomTemplate

// Clone returns a deep copy of the template catalog, so that a saved project
// keeps its own snapshot independent of later edits.
func (rt RoomTemplates) Clone() RoomTemplates {
	cp := make(RoomTemplates, len(rt))
	for name, tpl := range rt {
		cp[name] = tpl.Clone()
	}
	return cp
}

// Names returns the room type names in sorted order.
func (rt RoomTemplates) Names() []string {
	names := make([]string, 0, len(rt))
	for name := range rt {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRoomTemplates returns the built-in room type catalog.
func DefaultRoomTemplates() RoomTemplates {
	return RoomTemplates{
		"Master Bedroom":   {AreaM2: 18, Fixtures: map[string]float64{"Internal door": 1, "Window (each)": 2, "Light fixture": 2}},
		"Standard Bedroom": {AreaM2: 12, Fixtures: map[string]float64{"Internal door": 1, "Window (each)": 1, "Light fixture": 2}},
		"Bathroom (full)":  {AreaM2: 6, Fixtures: map[string]float64{"Toilet (WC) (each)": 1, "Wash basin (each)": 1, "Shower set (each)": 1, "Light fixture": 1}},
		"Bathroom (half)":  {AreaM2: 3, Fixtures: map[string]float64{"Toilet (WC) (each)": 1, "Wash basin (each)": 1, "Light fixture": 1}},
		"Kitchen (main)":   {AreaM2: 10, Fixtures: map[string]float64{"Kitchen sink (each)": 1, "Kitchen cabinet (per lm)": 3, "Light fixture": 2}},
		"Living Room":      {AreaM2: 20, Fixtures: map[string]float64{"Internal door": 1, "Window (each)": 3, "Light fixture": 3}},
		"Dining Room":      {AreaM2: 12, Fixtures: map[string]float64{"Light fixture": 2, "Window (each)": 2}},
		"Garage (1 car)":   {AreaM2: 18, Fixtures: map[string]float64{"Gate (each)": 1}},
		"Verandah":         {AreaM2: 8, Fixtures: map[string]float64{}},
		"Store / Pantry":   {AreaM2: 6, Fixtures: map[string]float64{}},
	}
}
