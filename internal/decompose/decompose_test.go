package decompose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendercraft/tender-cli/internal/catalog"
	"github.com/tendercraft/tender-cli/internal/model"
)

func TestDecomposeConcrete(t *testing.T) {
	t.Parallel()

	d := New(catalog.Default(), 0.10, 10)

	item := model.WorkItem{
		No:          1,
		Description: "Pour concrete structure",
		Unit:        "m3",
		Quantity:    10,
	}
	out := d.Decompose(item)

	assert.Equal(t, "structural work", out.Category)
	assert.Equal(t, model.RiskHigh, out.RiskLevel)

	require.Len(t, out.Materials, 2)
	concrete := out.Materials[0]
	assert.Equal(t, "ready-mixed concrete", concrete.Name)
	assert.InDelta(t, 10.5, concrete.TotalQuantity, 1e-9)
	assert.InDelta(t, 10.5*2800, concrete.TotalPrice, 1e-9)

	steel := out.Materials[1]
	assert.Equal(t, "rebar steel", steel.Name)
	assert.InDelta(t, 1200, steel.TotalQuantity, 1e-9)
	assert.InDelta(t, 1200*25, steel.TotalPrice, 1e-9)

	require.Len(t, out.Labor, 3)
	assert.InDelta(t, 1.0, out.Labor[0].ManDays, 1e-9) // foreman 0.1/unit
	assert.InDelta(t, 3.0, out.Labor[1].ManDays, 1e-9) // concreter 0.3/unit
	assert.InDelta(t, 5.0, out.Labor[2].ManDays, 1e-9) // helper 0.5/unit

	require.Len(t, out.Equipment, 2)
	assert.InDelta(t, 5.0, out.Equipment[0].UsageDays, 1e-9)
	assert.InDelta(t, 3.0, out.Equipment[1].UsageDays, 1e-9)

	wantMaterial := 10.5*2800 + 1200*25
	wantLabor := 1.0*800 + 3.0*600 + 5.0*400
	wantEquipment := 5.0*500 + 3.0*100
	assert.InDelta(t, wantMaterial, out.MaterialTotal, 1e-9)
	assert.InDelta(t, wantLabor, out.LaborTotal, 1e-9)
	assert.InDelta(t, wantEquipment, out.EquipmentTotal, 1e-9)

	resource := wantMaterial + wantLabor + wantEquipment
	assert.InDelta(t, resource*0.10, out.OverheadCost, 1e-9)
	assert.InDelta(t, resource*1.10, out.TotalCost, 1e-9)
	assert.InDelta(t, out.TotalCost, out.DirectCost(), 1e-9)

	// 9 man-days over a crew of 10 rounds up to 1 day
	assert.Equal(t, 1, out.EstimatedDays)
}

func TestDecomposeUnmatched(t *testing.T) {
	t.Parallel()

	d := New(catalog.Default(), 0.10, 10)

	out := d.Decompose(model.WorkItem{No: 7, Description: "Site survey", Unit: "job", Quantity: 1})

	assert.Equal(t, catalog.FallbackCategory, out.Category)
	assert.Equal(t, model.RiskLow, out.RiskLevel)
	assert.Empty(t, out.Materials)
	assert.Empty(t, out.Labor)
	assert.Empty(t, out.Equipment)
	assert.Zero(t, out.TotalCost)
	assert.Zero(t, out.EstimatedDays)
}

func TestDecomposePresetCategoryKept(t *testing.T) {
	t.Parallel()

	d := New(catalog.Default(), 0.10, 10)

	out := d.Decompose(model.WorkItem{
		No:          3,
		Description: "Paint ceiling",
		Unit:        "m2",
		Quantity:    100,
		Category:    "finishing work",
	})
	assert.Equal(t, "finishing work", out.Category)
	require.Len(t, out.Materials, 2)
	assert.InDelta(t, 15.0, out.Materials[0].TotalQuantity, 1e-9)
}

func TestEstimateDaysFallback(t *testing.T) {
	t.Parallel()

	d := New(catalog.Default(), 0.10, 10)

	tests := []struct {
		name        string
		description string
		wantDays    int
		wantRisk    model.RiskLevel
	}{
		{
			name:        "install keyword without labor",
			description: "Install elevator system",
			wantDays:    15,
			wantRisk:    model.RiskMedium,
		},
		{
			name:        "repair keyword without labor",
			description: "Repair roof leak",
			wantDays:    7,
			wantRisk:    model.RiskLow,
		},
		{
			name:        "no keyword no labor",
			description: "Clear vegetation",
			wantDays:    0,
			wantRisk:    model.RiskLow,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := d.Decompose(model.WorkItem{Description: tt.description, Quantity: 1})
			assert.Equal(t, tt.wantDays, out.EstimatedDays)
			assert.Equal(t, tt.wantRisk, out.RiskLevel)
		})
	}
}

func TestItemRisk(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.RiskHigh, itemRisk("pour concrete", "structural work"))
	assert.Equal(t, model.RiskHigh, itemRisk("steel frame", "structural work"))
	assert.Equal(t, model.RiskMedium, itemRisk("electrical conduit", "electrical system"))
	assert.Equal(t, model.RiskMedium, itemRisk("install fixtures", "other work"))
	assert.Equal(t, model.RiskLow, itemRisk("paint wall", "finishing work"))
}
