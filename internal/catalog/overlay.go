package catalog

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Overlay is a YAML rule file layered on top of the built-in catalog.
// In append mode (the default) its rule groups are added after the built-in
// ones; in replace mode any non-empty group replaces the built-in group
// wholesale.
type Overlay struct {
	Mode       string          `yaml:"mode"` // "append" (default) or "replace"
	Materials  []MaterialRule  `yaml:"materials"`
	Labor      []LaborRule     `yaml:"labor"`
	Equipment  []EquipmentRule `yaml:"equipment"`
	Categories []CategoryRule  `yaml:"categories"`
}

// Load returns the built-in catalog, optionally extended by the overlay file
// at path. An empty path yields the defaults unchanged.
func Load(path string) (*Catalog, error) {
	cat := Default()
	if path == "" {
		return cat, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read overlay %s", path)
	}

	var ov Overlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse overlay %s", path)
	}

	if err := ov.validate(); err != nil {
		return nil, err
	}
	ov.apply(cat)

	zap.L().Info("catalog: overlay applied",
		zap.String("path", path),
		zap.String("mode", ov.mode()),
		zap.Int("materials", len(cat.Materials)),
		zap.Int("labor", len(cat.Labor)),
		zap.Int("equipment", len(cat.Equipment)),
		zap.Int("categories", len(cat.Categories)))

	return cat, nil
}

func (o *Overlay) mode() string {
	if o.Mode == "" {
		return "append"
	}
	return o.Mode
}

func (o *Overlay) validate() error {
	switch o.mode() {
	case "append", "replace":
	default:
		return eris.Errorf("catalog: unknown overlay mode %q", o.Mode)
	}
	for _, r := range o.Materials {
		if len(r.Keywords) == 0 || r.Name == "" {
			return eris.New("catalog: material rule needs keywords and name")
		}
	}
	for _, r := range o.Labor {
		if len(r.Keywords) == 0 || r.Type == "" {
			return eris.New("catalog: labor rule needs keywords and type")
		}
	}
	for _, r := range o.Equipment {
		if len(r.Keywords) == 0 || r.Name == "" {
			return eris.New("catalog: equipment rule needs keywords and name")
		}
	}
	for _, r := range o.Categories {
		if len(r.Keywords) == 0 || r.Category == "" {
			return eris.New("catalog: category rule needs keywords and category")
		}
	}
	return nil
}

func (o *Overlay) apply(cat *Catalog) {
	if o.mode() == "replace" {
		if len(o.Materials) > 0 {
			cat.Materials = o.Materials
		}
		if len(o.Labor) > 0 {
			cat.Labor = o.Labor
		}
		if len(o.Equipment) > 0 {
			cat.Equipment = o.Equipment
		}
		if len(o.Categories) > 0 {
			cat.Categories = o.Categories
		}
		return
	}
	cat.Materials = append(cat.Materials, o.Materials...)
	cat.Labor = append(cat.Labor, o.Labor...)
	cat.Equipment = append(cat.Equipment, o.Equipment...)
	cat.Categories = append(cat.Categories, o.Categories...)
}
