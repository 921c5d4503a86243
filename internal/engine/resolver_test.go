package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/BuildEst/internal/model"
)

func testCatalog() []model.MaterialRecord {
	return []model.MaterialRecord{
		{Item: "Internal door (each)", Unit: "each", Price: 700, Phase: model.PhaseFinishing},
		{Item: "Light fixture (each)", Unit: "each", Price: 150, Phase: model.PhaseFinishing},
		{Item: "Paint (ltr)", Unit: "ltr", Price: 40, Phase: model.PhaseFinishing, ConsumptionPerM2: 0.08},
		{Item: "Anti-rust paint (ltr)", Unit: "ltr", Price: 70, Phase: model.PhaseRoofing},
	}
}

func TestResolveAlias(t *testing.T) {
	r := NewResolver(testCatalog())
	item, kind := r.Resolve("Internal door")
	assert.Equal(t, "Internal door (each)", item)
	assert.Equal(t, MatchAlias, kind)

	item, kind = r.Resolve("Light fixture")
	assert.Equal(t, "Light fixture (each)", item)
	assert.Equal(t, MatchAlias, kind)
}

func TestResolveExactCaseInsensitive(t *testing.T) {
	r := NewResolver(testCatalog())
	item, kind := r.Resolve("paint (LTR)")
	assert.Equal(t, "Paint (ltr)", item)
	assert.Equal(t, MatchExact, kind)
}

func TestResolveSubstringFirstMatchWins(t *testing.T) {
	r := NewResolver(testCatalog())
	// "paint" is a substring of both paint items; catalog order decides.
	item, kind := r.Resolve("paint")
	assert.Equal(t, "Paint (ltr)", item)
	assert.Equal(t, MatchSubstring, kind)
}

func TestResolveSubstringFollowsCatalogOrder(t *testing.T) {
	reversed := []model.MaterialRecord{
		{Item: "Anti-rust paint (ltr)", Unit: "ltr", Price: 70, Phase: model.PhaseRoofing},
		{Item: "Paint (ltr)", Unit: "ltr", Price: 40, Phase: model.PhaseFinishing},
	}
	r := NewResolver(reversed)
	item, kind := r.Resolve("paint")
	assert.Equal(t, "Anti-rust paint (ltr)", item)
	assert.Equal(t, MatchSubstring, kind)
}

func TestResolveMiss(t *testing.T) {
	r := NewResolver(testCatalog())
	item, kind := r.Resolve("Jacuzzi")
	assert.Empty(t, item)
	assert.Equal(t, MatchNone, kind)
}

func TestResolveAliasRequiresCatalogItem(t *testing.T) {
	// Alias maps "Gate (each)" to itself, but the item is not in this catalog;
	// the substring step must not find it either, so the lookup misses.
	r := NewResolver(testCatalog())
	item, kind := r.Resolve("Gate (each)")
	assert.Empty(t, item)
	assert.Equal(t, MatchNone, kind)
}

func TestMatchKindString(t *testing.T) {
	assert.Equal(t, "alias", MatchAlias.String())
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "substring", MatchSubstring.String())
	assert.Equal(t, "none", MatchNone.String())
}
