// Package aggregate rolls decomposed work items up into project-level cost
// and resource summaries.
package aggregate

import (
	"math"
	"sort"
	"strconv"

	"github.com/tendercraft/tender-cli/internal/model"
)

// Summarize totals the per-item costs across an analyzed bill of quantities.
func Summarize(items []model.AnalyzedItem) model.CostSummary {
	var s model.CostSummary
	s.TotalItems = len(items)
	for _, it := range items {
		s.TotalMaterialCost += it.MaterialTotal
		s.TotalLaborCost += it.LaborTotal
		s.TotalEquipmentCost += it.EquipmentTotal
		s.TotalOverheadCost += it.OverheadCost
	}
	s.TotalDirectCost = s.TotalMaterialCost + s.TotalLaborCost +
		s.TotalEquipmentCost + s.TotalOverheadCost
	return s
}

// Materials merges every material line across items by name and
// specification. Output order follows first appearance, so identical inputs
// always produce identical output. Contributor lists record each contributing
// item's sequence number once per line, duplicates included.
func Materials(items []model.AnalyzedItem) []model.MaterialSummary {
	type key struct {
		name, spec string
	}
	index := make(map[key]int)
	var out []model.MaterialSummary

	for _, it := range items {
		for _, m := range it.Materials {
			k := key{m.Name, m.Specification}
			i, ok := index[k]
			if !ok {
				index[k] = len(out)
				out = append(out, model.MaterialSummary{
					Name:          m.Name,
					Specification: m.Specification,
					Unit:          m.Unit,
					UnitPrice:     m.UnitPrice,
				})
				i = index[k]
			}
			out[i].TotalQuantity += m.TotalQuantity
			out[i].TotalPrice += m.TotalPrice
			out[i].UsedInItems = append(out[i].UsedInItems, strconv.Itoa(it.No))
		}
	}
	return out
}

// Labor merges labor lines across items by type and skill tier.
func Labor(items []model.AnalyzedItem) []model.LaborSummary {
	type key struct {
		typ   string
		skill model.SkillLevel
	}
	index := make(map[key]int)
	var out []model.LaborSummary

	for _, it := range items {
		for _, l := range it.Labor {
			k := key{l.Type, l.Skill}
			i, ok := index[k]
			if !ok {
				index[k] = len(out)
				out = append(out, model.LaborSummary{
					Type:      l.Type,
					Skill:     l.Skill,
					DailyRate: l.DailyRate,
				})
				i = index[k]
			}
			out[i].TotalManDays += l.ManDays
			out[i].TotalCost += l.TotalCost
			out[i].UsedInItems = append(out[i].UsedInItems, strconv.Itoa(it.No))
		}
	}
	return out
}

// Equipment merges equipment lines across items by name.
func Equipment(items []model.AnalyzedItem) []model.EquipmentSummary {
	index := make(map[string]int)
	var out []model.EquipmentSummary

	for _, it := range items {
		for _, e := range it.Equipment {
			k := e.Name
			i, ok := index[k]
			if !ok {
				index[k] = len(out)
				out = append(out, model.EquipmentSummary{
					Name:      e.Name,
					Ownership: e.Ownership,
					DailyRate: e.DailyRate,
				})
				i = index[k]
			}
			out[i].TotalUsageDays += e.UsageDays
			out[i].TotalCost += e.TotalCost
			out[i].UsedInItems = append(out[i].UsedInItems, strconv.Itoa(it.No))
		}
	}
	return out
}

// BuildTimeline derives project duration and the critical path. Duration is
// total labor man-days spread over a crew of crewSize; the critical path is
// the criticalPathSize most labor-intensive item descriptions.
func BuildTimeline(items []model.AnalyzedItem, crewSize, criticalPathSize int) model.Timeline {
	if crewSize <= 0 {
		crewSize = 10
	}
	if criticalPathSize <= 0 {
		criticalPathSize = 5
	}

	var totalManDays float64
	for _, it := range items {
		totalManDays += it.ManDays()
	}

	// Stable sort keeps ties in input order.
	ranked := make([]model.AnalyzedItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ManDays() > ranked[j].ManDays()
	})

	var path []string
	for i := 0; i < len(ranked) && i < criticalPathSize; i++ {
		if ranked[i].ManDays() <= 0 {
			break
		}
		path = append(path, ranked[i].Description)
	}

	return model.Timeline{
		TotalDuration: int(math.Ceil(totalManDays / float64(crewSize))),
		CriticalPath:  path,
	}
}
