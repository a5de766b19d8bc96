// Package risk grades project and bid risk and produces the advisory
// findings attached to an analysis.
package risk

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tendercraft/tender-cli/internal/model"
)

var printer = message.NewPrinter(language.English)

// AssessProject derives the project-level risk findings from the analyzed
// items and the profit model. Rules are additive: every rule that fires adds
// one finding, and none firing yields an empty slice.
func AssessProject(items []model.AnalyzedItem, profit model.ProfitModel) []model.RiskFactor {
	var risks []model.RiskFactor

	if !profit.BudgetUndefined && profit.NetProfitPercent < 10 {
		risks = append(risks, model.RiskFactor{
			Category:      "financial",
			Description:   "low profit margin leaves little room for cost overruns",
			Impact:        model.RiskHigh,
			Probability:   model.RiskHigh,
			Mitigation:    "re-estimate major cost items and negotiate supplier prices before bidding",
			EstimatedCost: profit.TotalBudget * 0.05,
		})
	}

	var highRiskCost float64
	highRiskCount := 0
	for _, it := range items {
		if it.RiskLevel == model.RiskHigh {
			highRiskCount++
			highRiskCost += it.TotalCost
		}
	}
	if highRiskCount > 0 {
		risks = append(risks, model.RiskFactor{
			Category:      "technical",
			Description:   fmt.Sprintf("%d work items involve complex high-risk work", highRiskCount),
			Impact:        model.RiskHigh,
			Probability:   model.RiskMedium,
			Mitigation:    "assign experienced supervision and prepare method statements",
			EstimatedCost: highRiskCost * 0.10,
		})
	}

	if totalEstimatedDays(items) > 180 {
		risks = append(risks, model.RiskFactor{
			Category:      "schedule",
			Description:   "combined work duration exceeds 180 days",
			Impact:        model.RiskMedium,
			Probability:   model.RiskMedium,
			Mitigation:    "plan phased execution and track progress weekly",
			EstimatedCost: profit.TotalBudget * 0.03,
		})
	}

	return risks
}

// Recommendations renders the advisory text for an analysis.
func Recommendations(items []model.AnalyzedItem, profit model.ProfitModel) []string {
	var recs []string

	switch {
	case profit.BudgetUndefined:
		recs = append(recs, "budget is undefined; profitability cannot be assessed")
	case profit.NetProfitPercent > 20:
		recs = append(recs, "high profit potential; a more aggressive bid could improve the win chance")
	case profit.NetProfitPercent >= 10:
		recs = append(recs, "moderate profit; review cost assumptions before discounting further")
	default:
		recs = append(recs, "low profit margin; re-estimate costs or reduce scope before bidding")
	}

	if !profit.BudgetUndefined {
		recs = append(recs, printer.Sprintf("recommended bid price %.2f baht (%.0f%% below budget)",
			profit.RecommendedBidPrice, profit.RecommendedDiscountPercent))
	}

	highRiskCount := 0
	for _, it := range items {
		if it.RiskLevel == model.RiskHigh {
			highRiskCount++
		}
	}
	if highRiskCount > 0 {
		recs = append(recs, fmt.Sprintf("%d high-risk items need close supervision during execution", highRiskCount))
	}

	if !profit.BudgetUndefined && profit.SafetyMarginPercent < 15 {
		recs = append(recs, "safety margin is below 15%; cost overruns could erase the profit")
	}

	return recs
}

// ScoreBid grades the risk of bidding on a project given the expected profit
// margin. largeBudget is the threshold above which sheer project size adds
// risk. now anchors the deadline check.
func ScoreBid(project model.BidProject, profitMargin float64, largeBudget float64, now time.Time) (model.RiskLevel, []string) {
	score := 0
	var factors []string

	switch {
	case profitMargin < 5:
		score += 3
		factors = append(factors, "very thin profit margin")
	case profitMargin < 10:
		score += 2
		factors = append(factors, "thin profit margin")
	}

	if project.Budget > largeBudget {
		score++
		factors = append(factors, "large project size strains cash flow")
	}

	if project.CompetitorCount > 10 {
		score += 2
		factors = append(factors, "crowded field of competitors")
	}

	if !project.Deadline.IsZero() && project.Deadline.Sub(now) < 3*24*time.Hour {
		score += 2
		factors = append(factors, "submission deadline is very close")
	}

	if len(project.Requirements) > 10 {
		score++
		factors = append(factors, "long list of technical requirements")
	}

	return bucket(score), factors
}

func bucket(score int) model.RiskLevel {
	switch {
	case score <= 2:
		return model.RiskLow
	case score <= 4:
		return model.RiskMedium
	case score <= 6:
		return model.RiskHigh
	default:
		return model.RiskVeryHigh
	}
}

func totalEstimatedDays(items []model.AnalyzedItem) int {
	total := 0
	for _, it := range items {
		total += it.EstimatedDays
	}
	return total
}
