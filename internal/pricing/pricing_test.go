package pricing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/pricing"
)

var testMarkups = pricing.Markups{
	Version: "test",
	Basic:   -0.15,
	Premium: 0.18,
	Descriptions: map[domain.TierName]string{
		domain.TierStandard: "Full material coverage, standard labor",
	},
}

func TestDeriveTiers(t *testing.T) {
	tiers, err := pricing.DeriveTiers(1000, 500, testMarkups)
	require.NoError(t, err)
	require.Len(t, tiers, 3)

	assert.Equal(t, domain.TierBasic, tiers[0].Tier)
	assert.Equal(t, domain.TierStandard, tiers[1].Tier)
	assert.Equal(t, domain.TierPremium, tiers[2].Tier)

	assert.Equal(t, 1500.0, tiers[1].TotalPrice)
	assert.Equal(t, 1000.0, tiers[1].MaterialsCost)
	assert.Equal(t, 500.0, tiers[1].LaborCost)
	assert.Equal(t, "Full material coverage, standard labor", tiers[1].Description)

	assert.InDelta(t, 1275.0, tiers[0].TotalPrice, pricing.Tolerance)
	assert.InDelta(t, 1770.0, tiers[2].TotalPrice, pricing.Tolerance)
	assert.InDelta(t, 1180.0, tiers[2].MaterialsCost, pricing.Tolerance)
}

func TestDeriveTiers_PartsAddUp(t *testing.T) {
	inputs := [][2]float64{
		{0, 0},
		{0.01, 0},
		{123.45, 678.91},
		{9999.99, 0.33},
		{1, 1e6},
		{333.333, 666.667},
	}
	markups := []pricing.Markups{
		testMarkups,
		{Basic: -0.2, Premium: 0.25},
		{Basic: -0.07, Premium: 0.333},
	}

	for _, m := range markups {
		for _, in := range inputs {
			tiers, err := pricing.DeriveTiers(in[0], in[1], m)
			require.NoError(t, err)
			require.NoError(t, pricing.ValidateTiers(tiers))

			names := map[domain.TierName]int{}
			for _, tier := range tiers {
				names[tier.Tier]++
				assert.LessOrEqual(t, math.Abs(tier.MaterialsCost+tier.LaborCost-tier.TotalPrice), pricing.Tolerance)
				assert.GreaterOrEqual(t, tier.TotalPrice, 0.0)
			}
			assert.Equal(t, map[domain.TierName]int{domain.TierBasic: 1, domain.TierStandard: 1, domain.TierPremium: 1}, names)
		}
	}
}

func TestDeriveTiers_RejectsInvalidInput(t *testing.T) {
	_, err := pricing.DeriveTiers(-1, 0, testMarkups)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = pricing.DeriveTiers(1, 1, pricing.Markups{Basic: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidateTiers(t *testing.T) {
	valid, err := pricing.DeriveTiers(100, 100, testMarkups)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func([]domain.PricingTier) []domain.PricingTier
	}{
		{"too few", func(ts []domain.PricingTier) []domain.PricingTier { return ts[:2] }},
		{"duplicate name", func(ts []domain.PricingTier) []domain.PricingTier {
			ts[0].Tier = domain.TierStandard
			return ts
		}},
		{"unknown name", func(ts []domain.PricingTier) []domain.PricingTier {
			ts[0].Tier = "Gold"
			return ts
		}},
		{"parts do not add up", func(ts []domain.PricingTier) []domain.PricingTier {
			ts[1].TotalPrice += 5
			return ts
		}},
		{"negative amount", func(ts []domain.PricingTier) []domain.PricingTier {
			ts[2].LaborCost = -1
			ts[2].TotalPrice = ts[2].MaterialsCost - 1
			return ts
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiers := make([]domain.PricingTier, len(valid))
			copy(tiers, valid)
			assert.ErrorIs(t, pricing.ValidateTiers(tt.mutate(tiers)), domain.ErrValidation)
		})
	}
}

func TestSortTiers(t *testing.T) {
	tiers := []domain.PricingTier{{Tier: domain.TierPremium}, {Tier: domain.TierBasic}, {Tier: domain.TierStandard}}
	sorted := pricing.SortTiers(tiers)
	assert.Equal(t, domain.TierBasic, sorted[0].Tier)
	assert.Equal(t, domain.TierStandard, sorted[1].Tier)
	assert.Equal(t, domain.TierPremium, sorted[2].Tier)
	assert.Equal(t, domain.TierPremium, tiers[0].Tier)
}

func TestLaborCost(t *testing.T) {
	cost, err := pricing.LaborCost(12.5, 85)
	require.NoError(t, err)
	assert.Equal(t, 1062.5, cost)

	_, err = pricing.LaborCost(-1, 85)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
