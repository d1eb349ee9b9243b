package redflag_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/redflag"
)

var rules = redflag.RulesFromConfig(&config.RedFlagsConfig{
	Version:             "test",
	BudgetMismatchRatio: 0.70,
	MinMarginRatio:      0.15,
	PeakSeasonMonths:    []int{6, 7, 8, 9},
	BenchmarkRatio:      0.60,
	MinPricePerSqft:     2,
})

var winter = redflag.Context{Now: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}

func f64(v float64) *float64 { return &v }

func cleanSubmission() *domain.Submission {
	return &domain.Submission{
		Status:             domain.StatusApproved,
		Category:           "Bardeaux",
		ClientName:         "Tremblay",
		ClientEmail:        "tremblay@example.ca",
		Sqft:               f64(1000),
		TotalPrice:         10000,
		TotalMaterialsCost: 5000,
		TotalLaborCost:     3000,
		LineItems:          []domain.LineItem{{ID: "a"}},
		GeographicZone:     domain.ZoneGreen,
		SupplyChainRisk:    domain.SupplyStandard,
		DurationType:       domain.DurationFullDay,
	}
}

func categories(flags []redflag.Flag) []redflag.Category {
	out := []redflag.Category{}
	for _, f := range flags {
		out = append(out, f.Category)
	}
	return out
}

func TestEvaluate_CleanSubmission(t *testing.T) {
	assert.Empty(t, redflag.Evaluate(cleanSubmission(), rules, winter))
}

func TestEvaluate_Rules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.Submission)
		ctx      redflag.Context
		expected redflag.Category
		severity redflag.Severity
	}{
		{"budget below 70%", func(s *domain.Submission) { s.QuotedTotal = f64(6900) }, winter, redflag.CategoryBudgetMismatch, redflag.SeverityWarning},
		{"far job site", func(s *domain.Submission) { s.GeographicZone = domain.ZoneRedFlag }, winter, redflag.CategoryGeographic, redflag.SeverityWarning},
		{"imported materials", func(s *domain.Submission) { s.SupplyChainRisk = domain.SupplyImport }, winter, redflag.CategoryMaterialRisk, redflag.SeverityCritical},
		{
			"multi day in July",
			func(s *domain.Submission) { s.DurationType = domain.DurationMultiDay },
			redflag.Context{Now: time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)},
			redflag.CategoryCrewAvailability, redflag.SeverityWarning,
		},
		{
			"thin margin on external tiers",
			func(s *domain.Submission) {
				s.PricingVersion = domain.PricingVersionExternal
				s.TotalMaterialsCost = 6000
				s.TotalLaborCost = 3000
			},
			winter, redflag.CategoryLowMargin, redflag.SeverityCritical,
		},
		{"below configured floor", func(s *domain.Submission) { s.TotalPrice = 1500 }, winter, redflag.CategoryLowPricePerArea, redflag.SeverityWarning},
		{
			"below warehouse benchmark",
			func(s *domain.Submission) {},
			redflag.Context{Now: winter.Now, PricePerSqftBenchmark: f64(20)},
			redflag.CategoryLowPricePerArea, redflag.SeverityWarning,
		},
		{"no email", func(s *domain.Submission) { s.ClientEmail = "" }, winter, redflag.CategoryMissingClientInfo, redflag.SeverityWarning},
		{"no name", func(s *domain.Submission) { s.ClientName = " " }, winter, redflag.CategoryMissingClientInfo, redflag.SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := cleanSubmission()
			tt.mutate(sub)

			flags := redflag.Evaluate(sub, rules, tt.ctx)
			require.Len(t, flags, 1, "got %v", categories(flags))
			assert.Equal(t, tt.expected, flags[0].Category)
			assert.Equal(t, tt.severity, flags[0].Severity)
			assert.True(t, flags[0].Dismissible)
		})
	}
}

func TestEvaluate_BoundaryCases(t *testing.T) {
	t.Run("budget at exactly 70% is fine", func(t *testing.T) {
		sub := cleanSubmission()
		sub.QuotedTotal = f64(7000)
		assert.Empty(t, redflag.Evaluate(sub, rules, winter))
	})

	t.Run("zero budget is treated as unknown", func(t *testing.T) {
		sub := cleanSubmission()
		sub.QuotedTotal = f64(0)
		assert.Empty(t, redflag.Evaluate(sub, rules, winter))
	})

	t.Run("multi day outside season", func(t *testing.T) {
		sub := cleanSubmission()
		sub.DurationType = domain.DurationMultiDay
		assert.Empty(t, redflag.Evaluate(sub, rules, redflag.Context{Now: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)}))
	})

	t.Run("derived tiers skip margin", func(t *testing.T) {
		sub := cleanSubmission()
		sub.TotalMaterialsCost = 6000
		sub.TotalLaborCost = 4000
		assert.Empty(t, redflag.Evaluate(sub, rules, winter))
	})

	t.Run("no sqft skips price per area", func(t *testing.T) {
		sub := cleanSubmission()
		sub.Sqft = nil
		sub.TotalPrice = 1
		assert.Empty(t, redflag.Evaluate(sub, rules, winter))
	})
}

func TestEvaluate_DoesNotMutate(t *testing.T) {
	sub := cleanSubmission()
	sub.SupplyChainRisk = domain.SupplyImport
	sub.QuotedTotal = f64(10)
	before := *sub

	flags := redflag.Evaluate(sub, rules, winter)
	assert.Equal(t, []redflag.Category{redflag.CategoryBudgetMismatch, redflag.CategoryMaterialRisk}, categories(flags))
	assert.Equal(t, before, *sub)
}

func TestMessages(t *testing.T) {
	flag := redflag.Flag{
		Category: redflag.CategoryLowPricePerArea,
		Params:   map[string]float64{"price_per_sqft": 1.5, "floor": 2},
	}

	msgs := redflag.Messages(flag)
	assert.Equal(t, "Price of $1.50/sqft is below the $2.00/sqft floor", msgs[redflag.LangEN])
	assert.Equal(t, "Prix de 1.50 $/pi² sous le seuil de 2.00 $/pi²", msgs[redflag.LangFR])

	only := redflag.Messages(flag, redflag.LangEN)
	assert.Len(t, only, 1)

	for _, c := range redflag.Categories {
		assert.NotEqual(t, string(c), redflag.Message(redflag.Flag{Category: c, Params: map[string]float64{}}, redflag.LangEN))
	}

	assert.Equal(t, redflag.LangEN, redflag.ParseLang("en"))
	assert.Equal(t, redflag.LangFR, redflag.ParseLang("de"))
}

func TestCategory_Severity(t *testing.T) {
	for _, c := range redflag.Categories {
		critical := c == redflag.CategoryMaterialRisk || c == redflag.CategoryLowMargin
		assert.Equal(t, critical, c.Severity() == redflag.SeverityCritical, c)
	}
	assert.False(t, redflag.Category("weather").IsValid())
}
