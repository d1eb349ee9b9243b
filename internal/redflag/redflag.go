// Package redflag runs the advisory checks shown before a submission is sent.
package redflag

import (
	"strings"
	"time"

	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/domain"
)

// Category identifies a check
type Category string

const (
	CategoryBudgetMismatch    Category = "budget_mismatch"
	CategoryGeographic        Category = "geographic"
	CategoryMaterialRisk      Category = "material_risk"
	CategoryCrewAvailability  Category = "crew_availability"
	CategoryLowMargin         Category = "low_margin"
	CategoryLowPricePerArea   Category = "low_price_per_area"
	CategoryMissingClientInfo Category = "missing_client_info"
)

// Categories lists every known category in evaluation order
var Categories = []Category{
	CategoryBudgetMismatch,
	CategoryGeographic,
	CategoryMaterialRisk,
	CategoryCrewAvailability,
	CategoryLowMargin,
	CategoryLowPricePerArea,
	CategoryMissingClientInfo,
}

// IsValid checks if the category is known
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Severity of a flag
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Severity returns the fixed severity of the category
func (c Category) Severity() Severity {
	switch c {
	case CategoryMaterialRisk, CategoryLowMargin:
		return SeverityCritical
	}
	return SeverityWarning
}

// Flag is one advisory result. Params carries the numbers the messages use.
// Every flag is dismissible, severity only ranks it.
type Flag struct {
	Category    Category
	Severity    Severity
	Dismissible bool
	Params      map[string]float64
}

// Rules are the versioned thresholds of the checks
type Rules struct {
	Version             string
	BudgetMismatchRatio float64
	MinMarginRatio      float64
	PeakSeasonMonths    []time.Month
	BenchmarkRatio      float64
	MinPricePerSqft     float64
}

// RulesFromConfig builds rules from configuration
func RulesFromConfig(cfg *config.RedFlagsConfig) Rules {
	months := make([]time.Month, 0, len(cfg.PeakSeasonMonths))
	for _, m := range cfg.PeakSeasonMonths {
		months = append(months, time.Month(m))
	}
	return Rules{
		Version:             cfg.Version,
		BudgetMismatchRatio: cfg.BudgetMismatchRatio,
		MinMarginRatio:      cfg.MinMarginRatio,
		PeakSeasonMonths:    months,
		BenchmarkRatio:      cfg.BenchmarkRatio,
		MinPricePerSqft:     cfg.MinPricePerSqft,
	}
}

// Context carries inputs that do not live on the submission
type Context struct {
	Now time.Time
	// PricePerSqftBenchmark is the historical price per sqft for the
	// category, when the warehouse has one
	PricePerSqftBenchmark *float64
}

// Evaluate runs every check. It never modifies the submission.
func Evaluate(sub *domain.Submission, rules Rules, ctx Context) []Flag {
	flags := []Flag{}
	add := func(c Category, params map[string]float64) {
		flags = append(flags, Flag{Category: c, Severity: c.Severity(), Dismissible: true, Params: params})
	}

	price := sub.TotalPrice

	if sub.QuotedTotal != nil && *sub.QuotedTotal > 0 && price > 0 && *sub.QuotedTotal < rules.BudgetMismatchRatio*price {
		add(CategoryBudgetMismatch, map[string]float64{
			"budget": *sub.QuotedTotal,
			"price":  price,
			"ratio":  rules.BudgetMismatchRatio,
		})
	}

	if sub.GeographicZone == domain.ZoneRedFlag {
		add(CategoryGeographic, nil)
	}

	if sub.SupplyChainRisk == domain.SupplyImport {
		add(CategoryMaterialRisk, nil)
	}

	if sub.DurationType == domain.DurationMultiDay && inSeason(ctx.Now.Month(), rules.PeakSeasonMonths) {
		add(CategoryCrewAvailability, map[string]float64{"month": float64(ctx.Now.Month())})
	}

	// Derived tiers equal the line item costs by construction, so margin is
	// only meaningful against tiers supplied by the quote generator.
	if sub.PricingVersion == domain.PricingVersionExternal && price > 0 && len(sub.LineItems) > 0 {
		cost := sub.TotalMaterialsCost + sub.TotalLaborCost
		margin := (price - cost) / price
		if margin < rules.MinMarginRatio {
			add(CategoryLowMargin, map[string]float64{
				"margin":  margin,
				"minimum": rules.MinMarginRatio,
			})
		}
	}

	if sub.Sqft != nil && *sub.Sqft > 0 && price > 0 {
		floor := rules.MinPricePerSqft
		if ctx.PricePerSqftBenchmark != nil && *ctx.PricePerSqftBenchmark > 0 {
			floor = *ctx.PricePerSqftBenchmark * rules.BenchmarkRatio
		}
		if perSqft := price / *sub.Sqft; floor > 0 && perSqft < floor {
			add(CategoryLowPricePerArea, map[string]float64{
				"price_per_sqft": perSqft,
				"floor":          floor,
			})
		}
	}

	if strings.TrimSpace(sub.ClientName) == "" || strings.TrimSpace(sub.ClientEmail) == "" {
		add(CategoryMissingClientInfo, nil)
	}

	return flags
}

func inSeason(month time.Month, season []time.Month) bool {
	for _, m := range season {
		if m == month {
			return true
		}
	}
	return false
}
