package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendercraft/tender-cli/internal/catalog"
	"github.com/tendercraft/tender-cli/internal/decompose"
	"github.com/tendercraft/tender-cli/internal/model"
)

func analyzedFixture(t *testing.T) []model.AnalyzedItem {
	t.Helper()

	d := decompose.New(catalog.Default(), 0.10, 10)
	return []model.AnalyzedItem{
		d.Decompose(model.WorkItem{No: 1, Description: "Pour concrete footing", Unit: "m3", Quantity: 20}),
		d.Decompose(model.WorkItem{No: 2, Description: "Concrete slab on grade", Unit: "m3", Quantity: 5}),
		d.Decompose(model.WorkItem{No: 3, Description: "Brick masonry wall", Unit: "m2", Quantity: 50}),
		d.Decompose(model.WorkItem{No: 4, Description: "Site survey", Unit: "job", Quantity: 1}),
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	items := analyzedFixture(t)
	s := Summarize(items)

	assert.Equal(t, 4, s.TotalItems)

	var wantMaterial, wantLabor, wantEquipment, wantOverhead float64
	for _, it := range items {
		wantMaterial += it.MaterialTotal
		wantLabor += it.LaborTotal
		wantEquipment += it.EquipmentTotal
		wantOverhead += it.OverheadCost
	}
	assert.InDelta(t, wantMaterial, s.TotalMaterialCost, 1e-9)
	assert.InDelta(t, wantLabor, s.TotalLaborCost, 1e-9)
	assert.InDelta(t, wantEquipment, s.TotalEquipmentCost, 1e-9)
	assert.InDelta(t, wantOverhead, s.TotalOverheadCost, 1e-9)

	// Grand total equals the sum of per-item direct costs.
	var wantDirect float64
	for _, it := range items {
		wantDirect += it.DirectCost()
	}
	assert.InDelta(t, wantDirect, s.TotalDirectCost, 1e-9)
}

func TestMaterialsMerged(t *testing.T) {
	t.Parallel()

	items := analyzedFixture(t)
	materials := Materials(items)

	var concrete *model.MaterialSummary
	for i := range materials {
		if materials[i].Name == "ready-mixed concrete" {
			concrete = &materials[i]
		}
	}
	require.NotNil(t, concrete)

	// 20 m3 and 5 m3 of concrete work merge into one line: 25 * 1.05
	assert.InDelta(t, 26.25, concrete.TotalQuantity, 1e-9)
	assert.InDelta(t, 26.25*2800, concrete.TotalPrice, 1e-9)
	assert.Equal(t, []string{"1", "2"}, concrete.UsedInItems)

	// Summary totals equal the sum of item-level material totals.
	var sumLines, sumItems float64
	for _, m := range materials {
		sumLines += m.TotalPrice
	}
	for _, it := range items {
		sumItems += it.MaterialTotal
	}
	assert.InDelta(t, sumItems, sumLines, 1e-9)
}

func TestLaborMerged(t *testing.T) {
	t.Parallel()

	items := analyzedFixture(t)
	labor := Labor(items)

	// helper appears at rate 400 in both concrete and masonry groups and
	// merges into a single summary line.
	var helper *model.LaborSummary
	for i := range labor {
		if labor[i].Type == "helper" {
			require.Nil(t, helper, "helper must merge into one line")
			helper = &labor[i]
		}
	}
	require.NotNil(t, helper)
	// concrete: 25 m3 * 0.5 = 12.5; masonry: 50 m2 * 0.4 = 20
	assert.InDelta(t, 32.5, helper.TotalManDays, 1e-9)
	assert.InDelta(t, 32.5*400, helper.TotalCost, 1e-9)
	assert.Len(t, helper.UsedInItems, 3)
}

func TestContributorDuplicatesKept(t *testing.T) {
	t.Parallel()

	// One item matching both the concrete and masonry labor groups emits
	// two helper lines, so its number appears twice on the merged line.
	d := decompose.New(catalog.Default(), 0.10, 10)
	items := []model.AnalyzedItem{
		d.Decompose(model.WorkItem{No: 1, Description: "Concrete slab with brick masonry base", Unit: "m2", Quantity: 10}),
	}

	labor := Labor(items)
	var helper *model.LaborSummary
	for i := range labor {
		if labor[i].Type == "helper" {
			helper = &labor[i]
		}
	}
	require.NotNil(t, helper)
	// 10 * 0.5 from the concrete group plus 10 * 0.4 from masonry
	assert.InDelta(t, 9, helper.TotalManDays, 1e-9)
	assert.Equal(t, []string{"1", "1"}, helper.UsedInItems)
}

func TestEquipmentMerged(t *testing.T) {
	t.Parallel()

	items := analyzedFixture(t)
	equipment := Equipment(items)

	require.Len(t, equipment, 2)
	assert.Equal(t, "concrete mixer", equipment[0].Name)
	assert.InDelta(t, 12.5, equipment[0].TotalUsageDays, 1e-9)
	assert.Equal(t, "concrete vibrator", equipment[1].Name)
	assert.InDelta(t, 7.5, equipment[1].TotalUsageDays, 1e-9)
}

func TestBuildTimeline(t *testing.T) {
	t.Parallel()

	items := analyzedFixture(t)
	tl := BuildTimeline(items, 10, 5)

	// concrete work: 25 m3 * 0.9 man-days/m3 = 22.5; masonry: 50 * 0.8 = 40
	assert.Equal(t, 7, tl.TotalDuration) // ceil(62.5 / 10)

	// ranked by labor man-days, zero-labor items excluded
	require.Len(t, tl.CriticalPath, 3)
	assert.Equal(t, "Brick masonry wall", tl.CriticalPath[0])
	assert.Equal(t, "Pour concrete footing", tl.CriticalPath[1])
	assert.Equal(t, "Concrete slab on grade", tl.CriticalPath[2])
}

func TestBuildTimelineTopN(t *testing.T) {
	t.Parallel()

	d := decompose.New(catalog.Default(), 0.10, 10)
	var items []model.AnalyzedItem
	for i := 0; i < 8; i++ {
		items = append(items, d.Decompose(model.WorkItem{
			No:          i + 1,
			Description: "Pour concrete lift",
			Unit:        "m3",
			Quantity:    float64(10 + i),
		}))
	}

	tl := BuildTimeline(items, 10, 5)
	assert.Len(t, tl.CriticalPath, 5)
}

func TestBuildTimelineEmpty(t *testing.T) {
	t.Parallel()

	tl := BuildTimeline(nil, 10, 5)
	assert.Zero(t, tl.TotalDuration)
	assert.Empty(t, tl.CriticalPath)
}
