// Package finance layers indirect costs, tax, and profit on top of the
// direct-cost rollup and derives the recommended bid price.
package finance

import "github.com/tendercraft/tender-cli/internal/model"

// Rates holds the layering percentages as fractions.
type Rates struct {
	Overhead    float64
	Management  float64
	Contingency float64
	Tax         float64
}

// DefaultRates are the standard estimating percentages: 10% site overhead,
// 7% management, 5% contingency, 7% VAT.
func DefaultRates() Rates {
	return Rates{Overhead: 0.10, Management: 0.07, Contingency: 0.05, Tax: 0.07}
}

// Build derives the full profit model from a cost summary and the project
// budget. Tax is charged on direct plus management cost only; contingency is
// a reserve, not a taxable expense. A budget of zero or less marks the model
// BudgetUndefined and zeroes every percentage instead of dividing by zero.
func Build(summary model.CostSummary, budget float64, rates Rates) model.ProfitModel {
	p := model.ProfitModel{
		TotalBudget:        budget,
		TotalMaterialCost:  summary.TotalMaterialCost,
		TotalLaborCost:     summary.TotalLaborCost,
		TotalEquipmentCost: summary.TotalEquipmentCost,
		TotalOverheadCost:  summary.TotalOverheadCost,
		TotalDirectCost:    summary.TotalDirectCost,
	}

	p.ManagementCost = p.TotalDirectCost * rates.Management
	p.ContingencyCost = p.TotalDirectCost * rates.Contingency
	p.TaxCost = (p.TotalDirectCost + p.ManagementCost) * rates.Tax
	p.TotalCost = p.TotalDirectCost + p.ManagementCost + p.ContingencyCost + p.TaxCost

	p.GrossProfit = budget - p.TotalDirectCost
	p.NetProfit = budget - p.TotalCost
	p.BreakEvenPrice = p.TotalCost

	if budget <= 0 {
		p.BudgetUndefined = true
		return p
	}

	p.GrossProfitPercent = p.GrossProfit / budget * 100
	p.NetProfitPercent = p.NetProfit / budget * 100

	if p.NetProfitPercent > 20 {
		p.RecommendedDiscountPercent = 8
	} else {
		p.RecommendedDiscountPercent = 5
	}
	p.RecommendedBidPrice = budget * (1 - p.RecommendedDiscountPercent/100)
	p.SafetyMarginPercent = (budget - p.BreakEvenPrice) / budget * 100

	return p
}
