// Package catalog holds the consumption rule tables that drive work-item
// decomposition: per-unit material, labor, and equipment consumption keyed
// by description keywords, plus category resolution rules.
package catalog

import (
	"strings"

	"github.com/tendercraft/tender-cli/internal/model"
)

// MaterialRule maps description keywords to per-unit material consumption.
type MaterialRule struct {
	Keywords        []string `yaml:"keywords"`
	Name            string   `yaml:"name"`
	Specification   string   `yaml:"specification"`
	Unit            string   `yaml:"unit"`
	QuantityPerUnit float64  `yaml:"quantity_per_unit"`
	UnitPrice       float64  `yaml:"unit_price"`
}

// LaborRule maps description keywords to per-unit labor consumption.
type LaborRule struct {
	Keywords        []string         `yaml:"keywords"`
	Type            string           `yaml:"type"`
	Skill           model.SkillLevel `yaml:"skill"`
	QuantityPerUnit float64          `yaml:"quantity_per_unit"` // man-days per base unit
	DailyRate       float64          `yaml:"daily_rate"`
}

// EquipmentRule maps description keywords to per-unit equipment usage.
type EquipmentRule struct {
	Keywords        []string        `yaml:"keywords"`
	Name            string          `yaml:"name"`
	Ownership       model.Ownership `yaml:"ownership"`
	QuantityPerUnit float64         `yaml:"quantity_per_unit"` // usage-days per base unit
	DailyRate       float64         `yaml:"daily_rate"`
}

// CategoryRule assigns a category label and intrinsic risk level. Rules are
// evaluated in order and the first match wins, unlike resource rules which
// match additively.
type CategoryRule struct {
	Keywords []string        `yaml:"keywords"`
	Category string          `yaml:"category"`
	Risk     model.RiskLevel `yaml:"risk"`
}

// Catalog is the full rule set. It is static, read-only data; a single
// Catalog may be shared by any number of concurrent analyses.
type Catalog struct {
	Materials  []MaterialRule  `yaml:"materials"`
	Labor      []LaborRule     `yaml:"labor"`
	Equipment  []EquipmentRule `yaml:"equipment"`
	Categories []CategoryRule  `yaml:"categories"`
}

// FallbackCategory is assigned when no category rule matches. Not an error:
// unmatched items degrade to this label with empty consumption lines.
const FallbackCategory = "other work"

// MatchMaterials returns every material rule whose keywords appear in the
// description. Multiple groups may fire for one item.
func (c *Catalog) MatchMaterials(description string) []MaterialRule {
	desc := strings.ToLower(description)
	var matched []MaterialRule
	for _, r := range c.Materials {
		if containsAny(desc, r.Keywords) {
			matched = append(matched, r)
		}
	}
	return matched
}

// MatchLabor returns every labor rule whose keywords appear in the description.
func (c *Catalog) MatchLabor(description string) []LaborRule {
	desc := strings.ToLower(description)
	var matched []LaborRule
	for _, r := range c.Labor {
		if containsAny(desc, r.Keywords) {
			matched = append(matched, r)
		}
	}
	return matched
}

// MatchEquipment returns every equipment rule whose keywords appear in the description.
func (c *Catalog) MatchEquipment(description string) []EquipmentRule {
	desc := strings.ToLower(description)
	var matched []EquipmentRule
	for _, r := range c.Equipment {
		if containsAny(desc, r.Keywords) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Categorize resolves the category label and intrinsic risk for a
// description. First matching rule wins; unmatched descriptions fall back to
// FallbackCategory at low risk.
func (c *Catalog) Categorize(description string) (string, model.RiskLevel) {
	desc := strings.ToLower(description)
	for _, r := range c.Categories {
		if containsAny(desc, r.Keywords) {
			return r.Category, r.Risk
		}
	}
	return FallbackCategory, model.RiskLow
}

// RiskForCategory returns the intrinsic risk for an explicit category label,
// used when the caller pre-sets a category instead of relying on keywords.
func (c *Catalog) RiskForCategory(category string) model.RiskLevel {
	for _, r := range c.Categories {
		if strings.EqualFold(r.Category, category) {
			return r.Risk
		}
	}
	return model.RiskLow
}

// containsAny reports whether any keyword appears (case-insensitive) in the
// already-lowercased text.
func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
