package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendercraft/tender-cli/internal/model"
)

func TestAssessProjectLowProfit(t *testing.T) {
	t.Parallel()

	profit := model.ProfitModel{TotalBudget: 1_000_000, NetProfitPercent: 4}
	risks := AssessProject(nil, profit)

	require.Len(t, risks, 1)
	assert.Equal(t, "financial", risks[0].Category)
	assert.Equal(t, model.RiskHigh, risks[0].Impact)
	assert.Equal(t, model.RiskHigh, risks[0].Probability)
	assert.InDelta(t, 50_000, risks[0].EstimatedCost, 1e-9)
}

func TestAssessProjectHealthyProfitNoFinding(t *testing.T) {
	t.Parallel()

	profit := model.ProfitModel{TotalBudget: 1_000_000, NetProfitPercent: 25}
	assert.Empty(t, AssessProject(nil, profit))
}

func TestAssessProjectComplexWork(t *testing.T) {
	t.Parallel()

	items := []model.AnalyzedItem{
		{RiskLevel: model.RiskHigh, TotalCost: 300_000},
		{RiskLevel: model.RiskHigh, TotalCost: 200_000},
		{RiskLevel: model.RiskLow, TotalCost: 900_000},
	}
	profit := model.ProfitModel{TotalBudget: 2_000_000, NetProfitPercent: 15}

	risks := AssessProject(items, profit)
	require.Len(t, risks, 1)
	assert.Equal(t, "technical", risks[0].Category)
	assert.Contains(t, risks[0].Description, "2 work items")
	// 10% of high-risk cost only, the low-risk item does not count
	assert.InDelta(t, 50_000, risks[0].EstimatedCost, 1e-9)
}

func TestAssessProjectScheduleRisk(t *testing.T) {
	t.Parallel()

	items := []model.AnalyzedItem{{EstimatedDays: 100}, {EstimatedDays: 81}}
	profit := model.ProfitModel{TotalBudget: 1_000_000, NetProfitPercent: 15}

	risks := AssessProject(items, profit)
	require.Len(t, risks, 1)
	assert.Equal(t, "schedule", risks[0].Category)
	assert.InDelta(t, 30_000, risks[0].EstimatedCost, 1e-9)

	// exactly 180 days does not fire
	items[1].EstimatedDays = 80
	assert.Empty(t, AssessProject(items, profit))
}

func TestAssessProjectUndefinedBudgetSkipsProfitRule(t *testing.T) {
	t.Parallel()

	profit := model.ProfitModel{BudgetUndefined: true}
	assert.Empty(t, AssessProject(nil, profit))
}

func TestRecommendationsBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		netPercent float64
		wantFirst  string
	}{
		{"high", 28, "high profit potential; a more aggressive bid could improve the win chance"},
		{"moderate", 15, "moderate profit; review cost assumptions before discounting further"},
		{"low", 6, "low profit margin; re-estimate costs or reduce scope before bidding"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			profit := model.ProfitModel{
				NetProfitPercent:           tt.netPercent,
				SafetyMarginPercent:        30,
				RecommendedBidPrice:        920_000,
				RecommendedDiscountPercent: 8,
			}
			recs := Recommendations(nil, profit)
			require.NotEmpty(t, recs)
			assert.Equal(t, tt.wantFirst, recs[0])
		})
	}
}

func TestRecommendationsPriceLineGrouped(t *testing.T) {
	t.Parallel()

	profit := model.ProfitModel{
		NetProfitPercent:           28,
		SafetyMarginPercent:        28,
		RecommendedBidPrice:        920_000,
		RecommendedDiscountPercent: 8,
	}
	recs := Recommendations(nil, profit)
	require.GreaterOrEqual(t, len(recs), 2)
	assert.Equal(t, "recommended bid price 920,000.00 baht (8% below budget)", recs[1])
}

func TestRecommendationsExtras(t *testing.T) {
	t.Parallel()

	items := []model.AnalyzedItem{
		{RiskLevel: model.RiskHigh},
		{RiskLevel: model.RiskHigh},
		{RiskLevel: model.RiskHigh},
	}
	profit := model.ProfitModel{NetProfitPercent: 12, SafetyMarginPercent: 9}

	recs := Recommendations(items, profit)
	assert.Contains(t, recs, "3 high-risk items need close supervision during execution")
	assert.Contains(t, recs, "safety margin is below 15%; cost overruns could erase the profit")
}

func TestScoreBid(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	largeBudget := 50_000_000.0

	tests := []struct {
		name    string
		project model.BidProject
		margin  float64
		want    model.RiskLevel
		factors int
	}{
		{
			name: "calm project is low risk",
			project: model.BidProject{
				Budget:          5_000_000,
				Deadline:        now.AddDate(0, 1, 0),
				CompetitorCount: 4,
			},
			margin:  20,
			want:    model.RiskLow,
			factors: 0,
		},
		{
			name: "thin margin alone is medium",
			project: model.BidProject{
				Budget:   5_000_000,
				Deadline: now.AddDate(0, 1, 0),
			},
			margin:  3,
			want:    model.RiskMedium,
			factors: 1,
		},
		{
			name: "crowded large project with thin margin is high",
			project: model.BidProject{
				Budget:          80_000_000,
				Deadline:        now.AddDate(0, 1, 0),
				CompetitorCount: 12,
			},
			margin:  7,
			want:    model.RiskHigh,
			factors: 3,
		},
		{
			name: "everything wrong is very high",
			project: model.BidProject{
				Budget:          80_000_000,
				Deadline:        now.Add(24 * time.Hour),
				CompetitorCount: 12,
				Requirements:    make([]string, 11),
			},
			margin:  2,
			want:    model.RiskVeryHigh,
			factors: 5,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			level, factors := ScoreBid(tt.project, tt.margin, largeBudget, now)
			assert.Equal(t, tt.want, level)
			assert.Len(t, factors, tt.factors)
		})
	}
}

func TestScoreBidZeroDeadlineIgnored(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	level, factors := ScoreBid(model.BidProject{Budget: 1_000_000}, 25, 50_000_000, now)
	assert.Equal(t, model.RiskLow, level)
	assert.Empty(t, factors)
}
