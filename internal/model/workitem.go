// Package model defines the domain types shared across the analysis engine.
package model

// RiskLevel grades how risky an item or project is.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very-high"
)

// SkillLevel is the labor skill tier.
type SkillLevel string

const (
	SkillHelper  SkillLevel = "helper"
	SkillSkilled SkillLevel = "skilled"
	SkillForeman SkillLevel = "foreman"
)

// Ownership describes whether equipment is owned or rented.
type Ownership string

const (
	OwnershipOwned  Ownership = "owned"
	OwnershipRented Ownership = "rented"
)

// WorkItem is a single bill-of-quantities line as supplied by the caller.
// Quantity defaults to 1 and Description to a generated placeholder during
// analysis; Category, when set, overrides keyword-based categorization.
type WorkItem struct {
	ID          string  `json:"id,omitempty"`
	No          int     `json:"no,omitempty"`
	Description string  `json:"description"`
	Unit        string  `json:"unit,omitempty"`
	Quantity    float64 `json:"quantity"`
	Category    string  `json:"category,omitempty"`
}

// MaterialLine is one resolved material consumption for a work item.
type MaterialLine struct {
	Name            string  `json:"name"`
	Specification   string  `json:"specification"`
	Unit            string  `json:"unit"`
	QuantityPerUnit float64 `json:"quantity_per_unit"`
	TotalQuantity   float64 `json:"total_quantity"`
	UnitPrice       float64 `json:"unit_price"`
	TotalPrice      float64 `json:"total_price"`
}

// LaborLine is one resolved labor consumption for a work item.
type LaborLine struct {
	Type            string     `json:"type"`
	Skill           SkillLevel `json:"skill"`
	QuantityPerUnit float64    `json:"quantity_per_unit"`
	ManDays         float64    `json:"man_days"`
	DailyRate       float64    `json:"daily_rate"`
	TotalCost       float64    `json:"total_cost"`
}

// EquipmentLine is one resolved equipment consumption for a work item.
type EquipmentLine struct {
	Name            string    `json:"name"`
	Ownership       Ownership `json:"ownership"`
	QuantityPerUnit float64   `json:"quantity_per_unit"`
	UsageDays       float64   `json:"usage_days"`
	DailyRate       float64   `json:"daily_rate"`
	TotalCost       float64   `json:"total_cost"`
}

// AnalyzedItem is a WorkItem after decomposition: the original fields plus
// resolved consumption lines, per-kind totals, and derived attributes.
type AnalyzedItem struct {
	WorkItem

	Materials []MaterialLine  `json:"materials"`
	Labor     []LaborLine     `json:"labor"`
	Equipment []EquipmentLine `json:"equipment"`

	MaterialTotal  float64 `json:"material_total"`
	LaborTotal     float64 `json:"labor_total"`
	EquipmentTotal float64 `json:"equipment_total"`
	OverheadCost   float64 `json:"overhead_cost"`
	TotalCost      float64 `json:"total_cost"`

	EstimatedDays int       `json:"estimated_days"`
	RiskLevel     RiskLevel `json:"risk_level"`
}

// ManDays returns the total labor man-days for the item.
func (a *AnalyzedItem) ManDays() float64 {
	var sum float64
	for _, l := range a.Labor {
		sum += l.ManDays
	}
	return sum
}

// DirectCost returns material + labor + equipment + overhead for the item.
func (a *AnalyzedItem) DirectCost() float64 {
	return a.MaterialTotal + a.LaborTotal + a.EquipmentTotal + a.OverheadCost
}
