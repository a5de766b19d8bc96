package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tendercraft/tender-cli/internal/model"
)

func TestBuildReferenceNumbers(t *testing.T) {
	t.Parallel()

	summary := model.CostSummary{
		TotalItems:      1,
		TotalDirectCost: 600_000,
	}
	p := Build(summary, 1_000_000, DefaultRates())

	assert.InDelta(t, 42_000, p.ManagementCost, 1e-6)
	assert.InDelta(t, 30_000, p.ContingencyCost, 1e-6)
	assert.InDelta(t, 44_940, p.TaxCost, 1e-6) // tax excludes contingency
	assert.InDelta(t, 716_940, p.TotalCost, 1e-6)

	assert.InDelta(t, 400_000, p.GrossProfit, 1e-6)
	assert.InDelta(t, 40.0, p.GrossProfitPercent, 1e-6)
	assert.InDelta(t, 283_060, p.NetProfit, 1e-6)
	assert.InDelta(t, 28.306, p.NetProfitPercent, 1e-6)

	// net margin above 20% earns the deeper discount
	assert.InDelta(t, 8.0, p.RecommendedDiscountPercent, 1e-6)
	assert.InDelta(t, 920_000, p.RecommendedBidPrice, 1e-6)

	assert.InDelta(t, 716_940, p.BreakEvenPrice, 1e-6)
	assert.InDelta(t, 28.306, p.SafetyMarginPercent, 1e-6)
	assert.False(t, p.BudgetUndefined)
}

func TestBuildModestMargin(t *testing.T) {
	t.Parallel()

	summary := model.CostSummary{TotalDirectCost: 800_000}
	p := Build(summary, 1_000_000, DefaultRates())

	// total cost 955,920 leaves 4.408% net, below the 20% threshold
	assert.InDelta(t, 955_920, p.TotalCost, 1e-6)
	assert.InDelta(t, 5.0, p.RecommendedDiscountPercent, 1e-6)
	assert.InDelta(t, 950_000, p.RecommendedBidPrice, 1e-6)
}

func TestBuildZeroBudget(t *testing.T) {
	t.Parallel()

	summary := model.CostSummary{TotalDirectCost: 500_000}

	for _, budget := range []float64{0, -1} {
		p := Build(summary, budget, DefaultRates())

		assert.True(t, p.BudgetUndefined)
		assert.Zero(t, p.GrossProfitPercent)
		assert.Zero(t, p.NetProfitPercent)
		assert.Zero(t, p.RecommendedDiscountPercent)
		assert.Zero(t, p.RecommendedBidPrice)
		assert.Zero(t, p.SafetyMarginPercent)

		// cost layering is still intact
		assert.InDelta(t, 35_000, p.ManagementCost, 1e-6)
		assert.Positive(t, p.TotalCost)

		// absolute profit figures stay defined (negative is fine)
		assert.False(t, math.IsNaN(p.NetProfit))
		assert.False(t, math.IsInf(p.NetProfitPercent, 0))
	}
}

func TestBuildZeroDirectCost(t *testing.T) {
	t.Parallel()

	p := Build(model.CostSummary{}, 1_000_000, DefaultRates())

	assert.Zero(t, p.TotalCost)
	assert.InDelta(t, 100.0, p.NetProfitPercent, 1e-6)
	assert.InDelta(t, 8.0, p.RecommendedDiscountPercent, 1e-6)
	assert.InDelta(t, 100.0, p.SafetyMarginPercent, 1e-6)
}
