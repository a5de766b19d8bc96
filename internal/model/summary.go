package model

// MaterialSummary aggregates one material across all items that consume it,
// keyed by name + specification.
type MaterialSummary struct {
	Name          string   `json:"name"`
	Specification string   `json:"specification"`
	Unit          string   `json:"unit"`
	TotalQuantity float64  `json:"total_quantity"`
	UnitPrice     float64  `json:"unit_price"`
	TotalPrice    float64  `json:"total_price"`
	UsedInItems   []string `json:"used_in_items"`
}

// LaborSummary aggregates one labor type across all items, keyed by type + skill.
type LaborSummary struct {
	Type         string     `json:"type"`
	Skill        SkillLevel `json:"skill"`
	TotalManDays float64    `json:"total_man_days"`
	DailyRate    float64    `json:"daily_rate"`
	TotalCost    float64    `json:"total_cost"`
	UsedInItems  []string   `json:"used_in_items"`
}

// EquipmentSummary aggregates one equipment kind across all items, keyed by name.
type EquipmentSummary struct {
	Name           string    `json:"name"`
	Ownership      Ownership `json:"ownership"`
	TotalUsageDays float64   `json:"total_usage_days"`
	DailyRate      float64   `json:"daily_rate"`
	TotalCost      float64   `json:"total_cost"`
	UsedInItems    []string  `json:"used_in_items"`
}

// CostSummary holds project-level direct cost rollups.
type CostSummary struct {
	TotalItems         int     `json:"total_items"`
	TotalMaterialCost  float64 `json:"total_material_cost"`
	TotalLaborCost     float64 `json:"total_labor_cost"`
	TotalEquipmentCost float64 `json:"total_equipment_cost"`
	TotalOverheadCost  float64 `json:"total_overhead_cost"`
	TotalDirectCost    float64 `json:"total_direct_cost"`
}

// Timeline is a coarse schedule estimate derived from labor man-days.
type Timeline struct {
	TotalDuration int      `json:"total_duration"` // working days
	CriticalPath  []string `json:"critical_path"`  // top items by man-days
}
