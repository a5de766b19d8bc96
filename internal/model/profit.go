package model

// ProfitModel is the layered financial model for a project, derived once per
// analysis from the direct-cost rollup and the budget. It is recomputed fresh
// on every call and never partially updated.
type ProfitModel struct {
	TotalBudget float64 `json:"total_budget"`

	TotalMaterialCost  float64 `json:"total_material_cost"`
	TotalLaborCost     float64 `json:"total_labor_cost"`
	TotalEquipmentCost float64 `json:"total_equipment_cost"`
	TotalOverheadCost  float64 `json:"total_overhead_cost"`
	TotalDirectCost    float64 `json:"total_direct_cost"`

	ManagementCost  float64 `json:"management_cost"`
	ContingencyCost float64 `json:"contingency_cost"`
	TaxCost         float64 `json:"tax_cost"`
	TotalCost       float64 `json:"total_cost"`

	GrossProfit        float64 `json:"gross_profit"`
	GrossProfitPercent float64 `json:"gross_profit_percent"`
	NetProfit          float64 `json:"net_profit"`
	NetProfitPercent   float64 `json:"net_profit_percent"`

	RecommendedBidPrice        float64 `json:"recommended_bid_price"`
	RecommendedDiscountPercent float64 `json:"recommended_discount_percent"`

	BreakEvenPrice      float64 `json:"break_even_price"`
	SafetyMarginPercent float64 `json:"safety_margin_percent"`

	// BudgetUndefined is set when budget <= 0. All percentage fields are
	// forced to zero in that case instead of propagating Inf/NaN.
	BudgetUndefined bool `json:"budget_undefined,omitempty"`
}

// RiskFactor is one advisory risk finding for a project.
type RiskFactor struct {
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Impact        RiskLevel `json:"impact"`
	Probability   RiskLevel `json:"probability"`
	Mitigation    string    `json:"mitigation"`
	EstimatedCost float64   `json:"estimated_cost"`
}
