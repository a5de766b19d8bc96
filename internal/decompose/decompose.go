// Package decompose expands bill-of-quantities work items into material,
// labor, and equipment consumption lines using the rule catalog.
package decompose

import (
	"math"
	"strings"

	"github.com/tendercraft/tender-cli/internal/catalog"
	"github.com/tendercraft/tender-cli/internal/model"
)

// Decomposer expands work items against a fixed catalog. Safe for concurrent
// use; it carries no mutable state.
type Decomposer struct {
	cat          *catalog.Catalog
	overheadRate float64
	crewSize     int
}

// New builds a Decomposer. overheadRate is applied per item on top of the
// direct resource cost; crewSize is the assumed crew for per-item duration.
func New(cat *catalog.Catalog, overheadRate float64, crewSize int) *Decomposer {
	if crewSize <= 0 {
		crewSize = 10
	}
	return &Decomposer{cat: cat, overheadRate: overheadRate, crewSize: crewSize}
}

// Decompose expands one work item. Items that match no rule are not an
// error; they come back with empty consumption lines, zero cost, and the
// fallback category so the rest of the pipeline can keep going.
func (d *Decomposer) Decompose(item model.WorkItem) model.AnalyzedItem {
	out := model.AnalyzedItem{WorkItem: item}

	if out.Category == "" {
		out.Category, _ = d.cat.Categorize(item.Description)
	}

	for _, r := range d.cat.MatchMaterials(item.Description) {
		total := item.Quantity * r.QuantityPerUnit
		out.Materials = append(out.Materials, model.MaterialLine{
			Name:            r.Name,
			Specification:   r.Specification,
			Unit:            r.Unit,
			QuantityPerUnit: r.QuantityPerUnit,
			TotalQuantity:   total,
			UnitPrice:       r.UnitPrice,
			TotalPrice:      total * r.UnitPrice,
		})
		out.MaterialTotal += total * r.UnitPrice
	}

	for _, r := range d.cat.MatchLabor(item.Description) {
		manDays := item.Quantity * r.QuantityPerUnit
		out.Labor = append(out.Labor, model.LaborLine{
			Type:            r.Type,
			Skill:           r.Skill,
			QuantityPerUnit: r.QuantityPerUnit,
			ManDays:         manDays,
			DailyRate:       r.DailyRate,
			TotalCost:       manDays * r.DailyRate,
		})
		out.LaborTotal += manDays * r.DailyRate
	}

	for _, r := range d.cat.MatchEquipment(item.Description) {
		usageDays := item.Quantity * r.QuantityPerUnit
		out.Equipment = append(out.Equipment, model.EquipmentLine{
			Name:            r.Name,
			Ownership:       r.Ownership,
			QuantityPerUnit: r.QuantityPerUnit,
			UsageDays:       usageDays,
			DailyRate:       r.DailyRate,
			TotalCost:       usageDays * r.DailyRate,
		})
		out.EquipmentTotal += usageDays * r.DailyRate
	}

	resourceCost := out.MaterialTotal + out.LaborTotal + out.EquipmentTotal
	out.OverheadCost = resourceCost * d.overheadRate
	out.TotalCost = resourceCost + out.OverheadCost

	out.EstimatedDays = d.estimateDays(out)
	out.RiskLevel = itemRisk(item.Description, out.Category)

	return out
}

// estimateDays derives per-item duration from labor man-days and the crew
// size. Items with no labor lines fall back to keyword heuristics so that
// schedule risk still sees unmatched install or repair work.
func (d *Decomposer) estimateDays(item model.AnalyzedItem) int {
	if manDays := item.ManDays(); manDays > 0 {
		return int(math.Ceil(manDays / float64(d.crewSize)))
	}
	desc := strings.ToLower(item.Description)
	switch {
	case strings.Contains(desc, "install"):
		return 15
	case strings.Contains(desc, "repair"):
		return 7
	default:
		return 0
	}
}

// itemRisk grades the intrinsic execution risk of a single work item.
// Structural and concrete work is high; system and installation work is
// medium; everything else is low.
func itemRisk(description, category string) model.RiskLevel {
	text := strings.ToLower(description + " " + category)
	switch {
	case strings.Contains(text, "structural") || strings.Contains(text, "concrete"):
		return model.RiskHigh
	case strings.Contains(text, "system") || strings.Contains(text, "install"):
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
