package catalog

import "github.com/tendercraft/tender-cli/internal/model"

// Default returns the built-in consumption rule catalog. Rates and
// consumption factors are reference estimating values for general building
// work; site-specific figures belong in an overlay file.
func Default() *Catalog {
	return &Catalog{
		Materials: []MaterialRule{
			{
				Keywords:        []string{"concrete", "slab"},
				Name:            "ready-mixed concrete",
				Specification:   "fc' 240 ksc",
				Unit:            "m3",
				QuantityPerUnit: 1.05,
				UnitPrice:       2800,
			},
			{
				Keywords:        []string{"concrete", "slab"},
				Name:            "rebar steel",
				Specification:   "SD40 DB12",
				Unit:            "kg",
				QuantityPerUnit: 120,
				UnitPrice:       25,
			},
			{
				Keywords:        []string{"brick", "wall"},
				Name:            "brick",
				Specification:   "standard clay brick",
				Unit:            "pc",
				QuantityPerUnit: 75,
				UnitPrice:       3.5,
			},
			{
				Keywords:        []string{"brick", "wall"},
				Name:            "cement",
				Specification:   "portland type 1",
				Unit:            "bag",
				QuantityPerUnit: 1.2,
				UnitPrice:       150,
			},
			{
				Keywords:        []string{"brick", "wall"},
				Name:            "coarse sand",
				Specification:   "",
				Unit:            "m3",
				QuantityPerUnit: 0.03,
				UnitPrice:       400,
			},
			{
				Keywords:        []string{"electrical", "wiring"},
				Name:            "electrical wire",
				Specification:   "THW 2.5 sqmm",
				Unit:            "m",
				QuantityPerUnit: 15,
				UnitPrice:       12,
			},
			{
				Keywords:        []string{"electrical", "wiring"},
				Name:            "power outlet",
				Specification:   "duplex grounded",
				Unit:            "pc",
				QuantityPerUnit: 1,
				UnitPrice:       85,
			},
			{
				Keywords:        []string{"paint"},
				Name:            "acrylic paint",
				Specification:   "exterior grade",
				Unit:            "gal",
				QuantityPerUnit: 0.15,
				UnitPrice:       850,
			},
			{
				Keywords:        []string{"paint"},
				Name:            "primer",
				Specification:   "",
				Unit:            "gal",
				QuantityPerUnit: 0.1,
				UnitPrice:       650,
			},
		},
		Labor: []LaborRule{
			{
				Keywords:        []string{"concrete", "slab"},
				Type:            "foreman",
				Skill:           model.SkillForeman,
				QuantityPerUnit: 0.1,
				DailyRate:       800,
			},
			{
				Keywords:        []string{"concrete", "slab"},
				Type:            "concreter",
				Skill:           model.SkillSkilled,
				QuantityPerUnit: 0.3,
				DailyRate:       600,
			},
			{
				Keywords:        []string{"concrete", "slab"},
				Type:            "helper",
				Skill:           model.SkillHelper,
				QuantityPerUnit: 0.5,
				DailyRate:       400,
			},
			{
				Keywords:        []string{"brick", "masonry"},
				Type:            "mason",
				Skill:           model.SkillSkilled,
				QuantityPerUnit: 0.4,
				DailyRate:       600,
			},
			{
				Keywords:        []string{"brick", "masonry"},
				Type:            "helper",
				Skill:           model.SkillHelper,
				QuantityPerUnit: 0.4,
				DailyRate:       400,
			},
			{
				Keywords:        []string{"electrical", "wiring"},
				Type:            "electrician",
				Skill:           model.SkillSkilled,
				QuantityPerUnit: 0.2,
				DailyRate:       700,
			},
			{
				Keywords:        []string{"paint"},
				Type:            "painter",
				Skill:           model.SkillSkilled,
				QuantityPerUnit: 0.15,
				DailyRate:       550,
			},
		},
		Equipment: []EquipmentRule{
			{
				Keywords:        []string{"concrete", "slab"},
				Name:            "concrete mixer",
				Ownership:       model.OwnershipRented,
				QuantityPerUnit: 0.5,
				DailyRate:       500,
			},
			{
				Keywords:        []string{"concrete", "slab"},
				Name:            "concrete vibrator",
				Ownership:       model.OwnershipOwned,
				QuantityPerUnit: 0.3,
				DailyRate:       100,
			},
			{
				Keywords:        []string{"electrical", "wiring"},
				Name:            "power drill",
				Ownership:       model.OwnershipOwned,
				QuantityPerUnit: 0.1,
				DailyRate:       50,
			},
		},
		Categories: []CategoryRule{
			{
				Keywords: []string{"concrete", "structural"},
				Category: "structural work",
				Risk:     model.RiskHigh,
			},
			{
				Keywords: []string{"brick", "masonry", "wall"},
				Category: "architectural work",
				Risk:     model.RiskLow,
			},
			{
				Keywords: []string{"electrical"},
				Category: "electrical system",
				Risk:     model.RiskMedium,
			},
			{
				Keywords: []string{"plumbing", "sanitary"},
				Category: "plumbing system",
				Risk:     model.RiskMedium,
			},
			{
				Keywords: []string{"paint"},
				Category: "finishing work",
				Risk:     model.RiskLow,
			},
			{
				Keywords: []string{"hvac", "air-conditioning"},
				Category: "hvac system",
				Risk:     model.RiskMedium,
			},
		},
	}
}
