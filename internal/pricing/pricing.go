// Package pricing derives the Basic, Standard and Premium price points of a quote.
package pricing

import (
	"math"
	"sort"

	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/domain"
)

// Tolerance is the rounding slack allowed when checking tier sums
const Tolerance = 0.01

// Markups is a versioned markup table. Basic and Premium are fractions
// applied to the Standard price, e.g. -0.15 and 0.18.
type Markups struct {
	Version      string
	Basic        float64
	Premium      float64
	Descriptions map[domain.TierName]string
}

// MarkupsFromConfig builds the markup table from configuration
func MarkupsFromConfig(cfg *config.PricingConfig) Markups {
	return Markups{
		Version: cfg.Version,
		Basic:   cfg.BasicMarkup,
		Premium: cfg.PremiumMarkup,
		Descriptions: map[domain.TierName]string{
			domain.TierBasic:    cfg.BasicDescription,
			domain.TierStandard: cfg.StandardDescription,
			domain.TierPremium:  cfg.PremiumDescription,
		},
	}
}

// Validate rejects markups that would produce a negative price
func (m Markups) Validate() error {
	if m.Basic <= -1 || m.Premium <= -1 {
		return domain.Validationf("markups must be greater than -100%%")
	}
	return nil
}

func (m Markups) factor(tier domain.TierName) float64 {
	switch tier {
	case domain.TierBasic:
		return 1 + m.Basic
	case domain.TierPremium:
		return 1 + m.Premium
	default:
		return 1
	}
}

// DeriveTiers returns exactly three tiers in display order. Standard totals
// materials plus labor; the other tiers scale both parts by their markup so
// materials + labor = total holds for each tier.
func DeriveTiers(materialsCost, laborCost float64, m Markups) ([]domain.PricingTier, error) {
	if materialsCost < 0 || laborCost < 0 {
		return nil, domain.Validationf("costs must not be negative")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	tiers := make([]domain.PricingTier, 0, len(domain.TierOrder))
	for _, name := range domain.TierOrder {
		f := m.factor(name)
		materials := Round(materialsCost * f)
		labor := Round(laborCost * f)
		tiers = append(tiers, domain.PricingTier{
			Tier:          name,
			TotalPrice:    Round(materials + labor),
			MaterialsCost: materials,
			LaborCost:     labor,
			Description:   m.Descriptions[name],
		})
	}
	return tiers, nil
}

// ZeroTiers returns three empty tiers, used to seed upsell children
func ZeroTiers(m Markups) []domain.PricingTier {
	tiers, _ := DeriveTiers(0, 0, Markups{Version: m.Version, Descriptions: m.Descriptions})
	return tiers
}

// LaborCost prices labor hours at an hourly rate
func LaborCost(hours, hourlyRate float64) (float64, error) {
	if hours < 0 || hourlyRate < 0 {
		return 0, domain.Validationf("hours and hourly rate must not be negative")
	}
	return Round(hours * hourlyRate), nil
}

// ValidateTiers checks the three-tier shape: exactly one tier per name,
// no negative amounts, and materials + labor = total within Tolerance.
func ValidateTiers(tiers []domain.PricingTier) error {
	if len(tiers) != len(domain.TierOrder) {
		return domain.Validationf("exactly %d pricing tiers are required, got %d", len(domain.TierOrder), len(tiers))
	}
	seen := make(map[domain.TierName]bool, len(tiers))
	for _, t := range tiers {
		if !t.Tier.IsValid() {
			return domain.Validationf("unknown pricing tier %q", t.Tier)
		}
		if seen[t.Tier] {
			return domain.Validationf("pricing tier %s given twice", t.Tier)
		}
		seen[t.Tier] = true
		if t.TotalPrice < 0 || t.MaterialsCost < 0 || t.LaborCost < 0 {
			return domain.Validationf("pricing tier %s has a negative amount", t.Tier)
		}
		if math.Abs(t.MaterialsCost+t.LaborCost-t.TotalPrice) > Tolerance {
			return domain.Validationf("pricing tier %s: materials and labor do not add up to the total", t.Tier)
		}
	}
	return nil
}

// SortTiers returns a copy of tiers in display order
func SortTiers(tiers []domain.PricingTier) []domain.PricingTier {
	rank := make(map[domain.TierName]int, len(domain.TierOrder))
	for i, name := range domain.TierOrder {
		rank[name] = i
	}
	out := make([]domain.PricingTier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool { return rank[out[i].Tier] < rank[out[j].Tier] })
	return out
}

// Round rounds to cents
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
