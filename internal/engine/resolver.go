// Package engine implements the estimation core: it turns room counts and
// per-room fixture templates into an aggregated bill of quantities, rolls the
// base cost up with markup percentages, and projects a phase-by-phase funding
// timeline under inflation and partial upfront funding.
package engine

import (
	"strings"

	"github.com/piwi3910/BuildEst/internal/model"
)

// MatchKind describes how a fixture label was resolved to a catalog item.
type MatchKind int

const (
	MatchNone      MatchKind = iota // No catalog item found
	MatchAlias                      // Resolved through the alias table
	MatchExact                      // Case-insensitive exact match
	MatchSubstring                  // Substring fallback, first catalog item wins
)

func (k MatchKind) String() string {
	switch k {
	case MatchAlias:
		return "alias"
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	default:
		return "none"
	}
}

// fixtureAliases maps the fixture labels used by the built-in room templates
// to their canonical catalog item names.
var fixtureAliases = map[string]string{
	"Internal door":            "Internal door (each)",
	"Window (each)":            "Window (each)",
	"Light fixture":            "Light fixture (each)",
	"Toilet (WC) (each)":       "Toilet (WC) (each)",
	"Wash basin (each)":        "Wash basin (each)",
	"Shower set (each)":        "Shower set (each)",
	"Kitchen sink (each)":      "Kitchen sink (each)",
	"Kitchen cabinet (per lm)": "Kitchen cabinet (per lm)",
	"Gate (each)":              "Gate (each)",
}

// Resolver maps free-text fixture labels to canonical catalog item names.
// Lookups are pure; the resolver holds no state beyond the catalog index.
type Resolver struct {
	order   []string          // catalog item names in catalog order
	byLower map[string]string // lowercased name -> canonical name
}

// NewResolver builds a resolver over the given catalog. Catalog order is
// preserved because the substring fallback returns the first match.
func NewResolver(catalog []model.MaterialRecord) *Resolver {
	r := &Resolver{
		order:   make([]string, 0, len(catalog)),
		byLower: make(map[string]string, len(catalog)),
	}
	for _, rec := range catalog {
		r.order = append(r.order, rec.Item)
		r.byLower[strings.ToLower(rec.Item)] = rec.Item
	}
	return r
}

// Resolve maps a fixture label to a catalog item name. Priority order:
// alias table, exact case-insensitive match, then a case-insensitive
// substring search over the catalog in order (first match wins). Substring
// hits are reported as such so callers can flag them for audit. Returns
// MatchNone when nothing matches; the caller is expected to synthesize a
// placeholder item so the fixture stays visible in the BOQ.
func (r *Resolver) Resolve(label string) (string, MatchKind) {
	if mapped, ok := fixtureAliases[label]; ok {
		if item, ok := r.byLower[strings.ToLower(mapped)]; ok {
			return item, MatchAlias
		}
	}
	lower := strings.ToLower(label)
	if item, ok := r.byLower[lower]; ok {
		return item, MatchExact
	}
	for _, item := range r.order {
		if strings.Contains(strings.ToLower(item), lower) {
			return item, MatchSubstring
		}
	}
	return "", MatchNone
}
