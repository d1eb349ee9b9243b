package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/redflag"
)

var testRules = redflag.RulesFromConfig(&config.RedFlagsConfig{
	Version:             "test",
	BudgetMismatchRatio: 0.70,
	MinMarginRatio:      0.15,
	PeakSeasonMonths:    []int{6, 7, 8, 9},
	BenchmarkRatio:      0.60,
	MinPricePerSqft:     0,
})

type stubBenchmarks struct {
	value *float64
	err   error
}

func (s stubBenchmarks) PricePerSqftBenchmark(ctx context.Context, category string) (*float64, error) {
	return s.value, s.err
}

func flagByCategory(resp *domain.RedFlagsResponse, c redflag.Category) (domain.RedFlagDTO, bool) {
	for _, f := range resp.Flags {
		if f.Category == string(c) {
			return f, true
		}
	}
	return domain.RedFlagDTO{}, false
}

func riskyDraft(t *testing.T, f *fixture) *domain.SubmissionDTO {
	t.Helper()
	req := draftRequest()
	sqft := 100.0
	req.Sqft = &sqft
	req.SupplyChainRisk = domain.SupplyImport
	req.GeographicZone = domain.ZoneRedFlag
	dto, err := f.submissions.Create(context.Background(), estimator, req)
	require.NoError(t, err)
	return dto
}

func TestRedFlagService_Evaluate(t *testing.T) {
	f := newFixture(t)
	f.redFlags.SetClock(func() time.Time { return time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC) })
	dto := riskyDraft(t, f)

	resp, err := f.redFlags.Evaluate(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "test", resp.RulesVersion)
	assert.True(t, resp.HasCritical)
	assert.False(t, resp.BenchmarkUsed)

	material, ok := flagByCategory(resp, redflag.CategoryMaterialRisk)
	require.True(t, ok)
	assert.Equal(t, "critical", material.Severity)
	assert.True(t, material.Dismissible)
	assert.Len(t, material.Messages, 2)

	_, ok = flagByCategory(resp, redflag.CategoryMissingClientInfo)
	assert.True(t, ok)

	only, err := f.redFlags.Evaluate(context.Background(), dto.ID, redflag.LangEN)
	require.NoError(t, err)
	assert.Len(t, only.Flags[0].Messages, 1)
	assert.Contains(t, only.Flags[0].Messages, "en")
}

func TestRedFlagService_Benchmark(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dto := riskyDraft(t, f)

	// 325 over 100 sqft is 3.25/sqft, below 60% of a 10/sqft benchmark
	benchmark := 10.0
	f.redFlags.SetBenchmarkSource(stubBenchmarks{value: &benchmark})
	resp, err := f.redFlags.Evaluate(ctx, dto.ID)
	require.NoError(t, err)
	assert.True(t, resp.BenchmarkUsed)
	_, ok := flagByCategory(resp, redflag.CategoryLowPricePerArea)
	assert.True(t, ok)

	f.redFlags.SetBenchmarkSource(stubBenchmarks{err: errors.New("warehouse offline")})
	resp, err = f.redFlags.Evaluate(ctx, dto.ID)
	require.NoError(t, err)
	assert.False(t, resp.BenchmarkUsed)
	_, ok = flagByCategory(resp, redflag.CategoryLowPricePerArea)
	assert.False(t, ok)
}

func TestRedFlagService_Dismiss(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dto := riskyDraft(t, f)

	err := f.redFlags.Dismiss(ctx, dto.ID, estimator, []string{"geographic", "missing_client_info", "geographic"})
	require.NoError(t, err)

	resp, err := f.redFlags.Evaluate(ctx, dto.ID)
	require.NoError(t, err)
	geo, ok := flagByCategory(resp, redflag.CategoryGeographic)
	require.True(t, ok)
	assert.True(t, geo.Dismissed)
	material, _ := flagByCategory(resp, redflag.CategoryMaterialRisk)
	assert.False(t, material.Dismissed)
	assert.True(t, resp.HasCritical)

	t.Run("critical flags can be dismissed", func(t *testing.T) {
		require.NoError(t, f.redFlags.Dismiss(ctx, dto.ID, estimator, []string{"material_risk", "low_margin"}))

		resp, err := f.redFlags.Evaluate(ctx, dto.ID)
		require.NoError(t, err)
		material, ok := flagByCategory(resp, redflag.CategoryMaterialRisk)
		require.True(t, ok)
		assert.True(t, material.Dismissed)
		assert.Equal(t, "critical", material.Severity)
		assert.True(t, resp.HasCritical)
	})

	t.Run("unknown category", func(t *testing.T) {
		err := f.redFlags.Dismiss(ctx, dto.ID, estimator, []string{"weather"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("empty list", func(t *testing.T) {
		err := f.redFlags.Dismiss(ctx, dto.ID, estimator, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown submission", func(t *testing.T) {
		err := f.redFlags.Dismiss(ctx, uuid.New(), estimator, []string{"geographic"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
