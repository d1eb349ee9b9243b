package complexity

import (
	"github.com/toiture-lv/quote-api/internal/domain"
)

// Selections is the state of the eight factors for one job. Empty strings
// and nil slices mean nothing is selected.
type Selections struct {
	RoofPitch           string   `json:"roof_pitch,omitempty"`
	AccessDifficulty    []string `json:"access_difficulty,omitempty"`
	Demolition          string   `json:"demolition,omitempty"`
	PenetrationsCount   int      `json:"penetrations_count,omitempty"`
	Security            []string `json:"security,omitempty"`
	MaterialRemoval     string   `json:"material_removal,omitempty"`
	RoofSectionsCount   int      `json:"roof_sections_count,omitempty"`
	PreviousLayersCount int      `json:"previous_layers_count,omitempty"`
}

func (s Selections) choice(key FactorKey) string {
	switch key {
	case FactorRoofPitch:
		return s.RoofPitch
	case FactorDemolition:
		return s.Demolition
	case FactorMaterialRemoval:
		return s.MaterialRemoval
	}
	return ""
}

func (s Selections) checked(key FactorKey) []string {
	switch key {
	case FactorAccessDifficulty:
		return s.AccessDifficulty
	case FactorSecurity:
		return s.Security
	}
	return nil
}

func (s Selections) count(key FactorKey) int {
	switch key {
	case FactorPenetrations:
		return s.PenetrationsCount
	case FactorRoofSections:
		return s.RoofSectionsCount
	case FactorPreviousLayers:
		return s.PreviousLayersCount
	}
	return 0
}

// Score is the factor hours with a per-contribution breakdown.
// Breakdown only holds non-zero contributions.
type Score struct {
	Hours     float64            `json:"hours"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// Scorer computes factor hours against a catalog
type Scorer struct {
	catalog *Catalog
}

// NewScorer creates a scorer. A nil catalog selects DefaultCatalog.
func NewScorer(catalog *Catalog) *Scorer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Scorer{catalog: catalog}
}

// FactorHours returns the additional labor hours for the selections
func (s *Scorer) FactorHours(sel Selections) (float64, error) {
	score, err := s.Score(sel)
	if err != nil {
		return 0, err
	}
	return score.Hours, nil
}

// Score sums every factor's contribution. Unknown option names and negative
// counts are validation errors.
func (s *Scorer) Score(sel Selections) (Score, error) {
	result := Score{Breakdown: make(map[string]float64)}

	add := func(key string, hours float64) {
		if hours > 0 {
			result.Breakdown[key] += hours
			result.Hours += hours
		}
	}

	for _, f := range s.catalog.Factors {
		switch f.Kind {
		case KindSingleChoice:
			name := sel.choice(f.Key)
			if name == "" {
				continue
			}
			opt, ok := f.option(name)
			if !ok {
				return Score{}, domain.Validationf("%s: unknown option %q", f.Key, name)
			}
			add(f.Label, opt.Hours)

		case KindMultiSelect:
			seen := make(map[string]bool)
			for _, name := range sel.checked(f.Key) {
				if seen[name] {
					continue
				}
				seen[name] = true
				opt, ok := f.option(name)
				if !ok {
					return Score{}, domain.Validationf("%s: unknown option %q", f.Key, name)
				}
				add(f.Label+"_"+opt.Name, opt.Hours)
			}

		case KindPerItem:
			n := sel.count(f.Key)
			if n < 0 {
				return Score{}, domain.Validationf("%s: count must not be negative", f.Key)
			}
			add(f.Label, float64(n)*f.HoursPerItem)

		case KindAboveBaseline:
			n := sel.count(f.Key)
			if n < 0 {
				return Score{}, domain.Validationf("%s: count must not be negative", f.Key)
			}
			if above := n - f.Baseline; above > 0 {
				add(f.Label, float64(above)*f.HoursPerItem)
			}

		default:
			return Score{}, domain.Validationf("%s: unsupported factor kind %s", f.Key, f.Kind)
		}
	}

	return result, nil
}

// Estimate combines tier base hours, factor hours and manual extra hours
type Estimate struct {
	Tier        int                `json:"tier"`
	TierScore   int                `json:"tier_score"`
	TierHours   float64            `json:"tier_hours"`
	FactorHours float64            `json:"factor_hours"`
	ExtraHours  float64            `json:"extra_hours"`
	TotalHours  float64            `json:"total_hours"`
	Breakdown   map[string]float64 `json:"breakdown"`
}

// Estimate returns the labor hours used to price the Standard tier
func (s *Scorer) Estimate(tier int, sel Selections, extraHours float64) (Estimate, error) {
	t, err := s.catalog.Tier(tier)
	if err != nil {
		return Estimate{}, err
	}
	if extraHours < 0 {
		return Estimate{}, domain.Validationf("extra hours must not be negative")
	}
	score, err := s.Score(sel)
	if err != nil {
		return Estimate{}, err
	}
	tierScore, _ := s.catalog.TierScore(tier)

	return Estimate{
		Tier:        tier,
		TierScore:   tierScore,
		TierHours:   t.BaseHours,
		FactorHours: score.Hours,
		ExtraHours:  extraHours,
		TotalHours:  t.BaseHours + score.Hours + extraHours,
		Breakdown:   score.Breakdown,
	}, nil
}
