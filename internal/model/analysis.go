package model

import "time"

// BOQAnalysis is the full result of analyzing one bill of quantities.
type BOQAnalysis struct {
	ID          string  `json:"id,omitempty"`
	ProjectName string  `json:"project_name"`
	TotalBudget float64 `json:"total_budget"`

	Items []AnalyzedItem `json:"items"`

	Summary CostSummary `json:"summary"`
	Profit  ProfitModel `json:"profit"`

	MaterialSummary  []MaterialSummary  `json:"material_summary"`
	LaborSummary     []LaborSummary     `json:"labor_summary"`
	EquipmentSummary []EquipmentSummary `json:"equipment_summary"`

	Risks           []RiskFactor `json:"risks"`
	Recommendations []string     `json:"recommendations"`

	Timeline Timeline `json:"timeline"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}
