package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BuildEst/internal/model"
)

func paintOnlyCatalog() []model.MaterialRecord {
	return []model.MaterialRecord{
		{Item: "Paint (ltr)", Unit: "ltr", Price: 40, Phase: model.PhaseFinishing, ConsumptionPerM2: 0.08},
	}
}

func bedroomTemplates() model.RoomTemplates {
	return model.RoomTemplates{
		"Standard Bedroom": {AreaM2: 12, Fixtures: map[string]float64{}},
	}
}

func TestBuildBOQAreaDriven(t *testing.T) {
	// One 12 m2 bedroom, paint at 0.08 ltr/m2 and 40 GHS/ltr.
	result := BuildBOQ(map[string]int{"Standard Bedroom": 1}, bedroomTemplates(), paintOnlyCatalog(), 1, 1)

	require.Len(t, result.Rows, 1)
	assert.InDelta(t, 12.0, result.TotalArea, 1e-9)
	row := result.Rows[0]
	assert.Equal(t, "Paint (ltr)", row.Item)
	assert.InDelta(t, 0.96, row.TotalQty, 1e-9)
	assert.InDelta(t, 38.4, row.TotalCost, 1e-9)
	assert.Equal(t, model.PhaseFinishing, row.Phase)
	assert.Empty(t, result.Notes)
}

func TestBuildBOQMultipliers(t *testing.T) {
	result := BuildBOQ(map[string]int{"Standard Bedroom": 1}, bedroomTemplates(), paintOnlyCatalog(), 1.25, 1.2)

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	// quality scales consumption, location scales price
	assert.InDelta(t, 0.08*1.25*12, row.TotalQty, 1e-9)
	assert.InDelta(t, 40*1.2, row.UnitPrice, 1e-9)
	assert.InDelta(t, row.TotalQty*row.UnitPrice, row.TotalCost, 1e-9)
}

func TestBuildBOQLinearInCounts(t *testing.T) {
	catalog := paintOnlyCatalog()
	templates := bedroomTemplates()
	single := BuildBOQ(map[string]int{"Standard Bedroom": 1}, templates, catalog, 1, 1)
	double := BuildBOQ(map[string]int{"Standard Bedroom": 2}, templates, catalog, 1, 1)

	assert.InDelta(t, 2*single.TotalArea, double.TotalArea, 1e-9)
	require.Len(t, double.Rows, 1)
	assert.InDelta(t, 2*single.Rows[0].TotalQty, double.Rows[0].TotalQty, 1e-9)
}

func TestBuildBOQZeroConsumptionYieldsFixtureRowsOnly(t *testing.T) {
	catalog := []model.MaterialRecord{
		{Item: "Cement (50kg bag)", Unit: "bag", Price: 125, Phase: model.PhaseFoundation, ConsumptionPerM2: 0},
		{Item: "Internal door (each)", Unit: "each", Price: 700, Phase: model.PhaseFinishing, ConsumptionPerM2: 0},
	}
	templates := model.RoomTemplates{
		"Standard Bedroom": {AreaM2: 12, Fixtures: map[string]float64{"Internal door": 1}},
	}
	result := BuildBOQ(map[string]int{"Standard Bedroom": 2}, templates, catalog, 1, 1)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Internal door (each)", result.Rows[0].Item)
	assert.InDelta(t, 2.0, result.Rows[0].TotalQty, 1e-9)
}

func TestBuildBOQFixturesScaleWithRoomCount(t *testing.T) {
	catalog := []model.MaterialRecord{
		{Item: "Window (each)", Unit: "each", Price: 450, Phase: model.PhaseFinishing},
	}
	templates := model.RoomTemplates{
		"Living Room": {AreaM2: 20, Fixtures: map[string]float64{"Window (each)": 3}},
	}
	result := BuildBOQ(map[string]int{"Living Room": 2}, templates, catalog, 1, 1)

	require.Len(t, result.Rows, 1)
	assert.InDelta(t, 6.0, result.Rows[0].TotalQty, 1e-9)
	assert.InDelta(t, 2700.0, result.Rows[0].TotalCost, 1e-9)
}

func TestBuildBOQPlaceholderForUnknownFixture(t *testing.T) {
	templates := model.RoomTemplates{
		"Spa": {AreaM2: 10, Fixtures: map[string]float64{"Jacuzzi": 1}},
	}
	result := BuildBOQ(map[string]int{"Spa": 2}, templates, paintOnlyCatalog(), 1, 1)

	require.Len(t, result.Rows, 2)
	placeholder := result.Rows[1]
	assert.Equal(t, "Jacuzzi (user)", placeholder.Item)
	assert.Equal(t, "each", placeholder.Unit)
	assert.Zero(t, placeholder.UnitPrice)
	assert.Equal(t, model.PhaseMisc, placeholder.Phase)
	assert.InDelta(t, 2.0, placeholder.TotalQty, 1e-9)
	assert.Zero(t, placeholder.TotalCost)
	require.Len(t, result.Notes, 1)
	assert.Contains(t, result.Notes[0], "Jacuzzi")
}

func TestBuildBOQSubstringResolutionIsFlagged(t *testing.T) {
	templates := model.RoomTemplates{
		"Studio": {AreaM2: 15, Fixtures: map[string]float64{"paint": 1}},
	}
	result := BuildBOQ(map[string]int{"Studio": 1}, templates, paintOnlyCatalog(), 1, 1)

	require.Len(t, result.Rows, 1)
	// area-driven 0.08*15 plus one fixture-driven unit
	assert.InDelta(t, 0.08*15+1, result.Rows[0].TotalQty, 1e-9)
	require.Len(t, result.Notes, 1)
	assert.Contains(t, result.Notes[0], "substring")
}

func TestBuildBOQEmptyForZeroCounts(t *testing.T) {
	result := BuildBOQ(map[string]int{}, bedroomTemplates(), paintOnlyCatalog(), 1, 1)
	assert.Empty(t, result.Rows)
	assert.Zero(t, result.TotalArea)

	result = BuildBOQ(map[string]int{"Standard Bedroom": 0}, bedroomTemplates(), paintOnlyCatalog(), 1, 1)
	assert.Empty(t, result.Rows)
}

func TestBuildBOQClampsNegativeInputs(t *testing.T) {
	catalog := []model.MaterialRecord{
		{Item: "Paint (ltr)", Unit: "ltr", Price: -40, Phase: model.PhaseFinishing, ConsumptionPerM2: -0.08},
	}
	result := BuildBOQ(map[string]int{"Standard Bedroom": -3}, bedroomTemplates(), catalog, 1, 1)
	assert.Empty(t, result.Rows)
	assert.Zero(t, result.TotalArea)
}

func TestBuildBOQRoomWithoutTemplateContributesNothing(t *testing.T) {
	result := BuildBOQ(map[string]int{"Attic": 2}, bedroomTemplates(), paintOnlyCatalog(), 1, 1)
	assert.Empty(t, result.Rows)
	assert.Zero(t, result.TotalArea)
}

func TestBuildBOQDefaultCatalogRun(t *testing.T) {
	counts := map[string]int{
		"Standard Bedroom": 2,
		"Bathroom (full)":  1,
		"Kitchen (main)":   1,
	}
	result := BuildBOQ(counts, model.DefaultRoomTemplates(), model.DefaultMaterials(), 1, 1)

	// 2*12 + 6 + 10
	assert.InDelta(t, 40.0, result.TotalArea, 1e-9)
	require.NotEmpty(t, result.Rows)
	assert.Empty(t, result.Notes, "built-in fixtures should resolve via the alias table")

	byItem := make(map[string]BOQRow)
	for _, r := range result.Rows {
		byItem[r.Item] = r
	}
	// 2 bedrooms with 1 internal door each
	assert.InDelta(t, 2.0, byItem["Internal door (each)"].TotalQty, 1e-9)
	// 2*2 bedroom lights + 1 bathroom + 2 kitchen
	assert.InDelta(t, 7.0, byItem["Light fixture (each)"].TotalQty, 1e-9)
	// area-driven: 0.40 bags/m2 * 40 m2
	assert.InDelta(t, 16.0, byItem["Cement (50kg bag)"].TotalQty, 1e-9)
}

func TestAggregateRowsAssociative(t *testing.T) {
	catalog := paintOnlyCatalog()
	templates := bedroomTemplates()

	whole := BuildBOQ(map[string]int{"Standard Bedroom": 4}, templates, catalog, 1, 1)
	partA := BuildBOQ(map[string]int{"Standard Bedroom": 1}, templates, catalog, 1, 1)
	partB := BuildBOQ(map[string]int{"Standard Bedroom": 3}, templates, catalog, 1, 1)

	merged := AggregateRows(append(partA.Rows, partB.Rows...))
	require.Len(t, merged, len(whole.Rows))
	for i := range merged {
		assert.Equal(t, whole.Rows[i].Item, merged[i].Item)
		assert.InDelta(t, whole.Rows[i].TotalQty, merged[i].TotalQty, 1e-9)
		assert.InDelta(t, whole.Rows[i].TotalCost, merged[i].TotalCost, 1e-9)
	}
}

func TestAggregateRowsKeepsDistinctPrices(t *testing.T) {
	rows := []BOQRow{
		{Item: "Paint (ltr)", Unit: "ltr", TotalQty: 1, UnitPrice: 40, TotalCost: 40, Phase: model.PhaseFinishing},
		{Item: "Paint (ltr)", Unit: "ltr", TotalQty: 1, UnitPrice: 45, TotalCost: 45, Phase: model.PhaseFinishing},
	}
	merged := AggregateRows(rows)
	assert.Len(t, merged, 2, "different unit prices must not merge")
}
