package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/complexity"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/service"
)

func f64(v float64) *float64 { return &v }

func TestEstimateService_Hours(t *testing.T) {
	svc := service.NewEstimateService(complexity.NewScorer(nil), markups, 75)

	est, err := svc.Hours(&domain.EstimateHoursRequest{
		Tier:             2,
		Factors:          domain.EstimateFactorSelections{RoofPitch: "steep", PenetrationsCount: 6},
		ManualExtraHours: 1.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, est.TotalHours)

	_, err = svc.Hours(&domain.EstimateHoursRequest{Tier: 9})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEstimateService_Tiers(t *testing.T) {
	svc := service.NewEstimateService(complexity.NewScorer(nil), markups, 75)

	tests := []struct {
		name     string
		req      domain.DeriveTiersRequest
		standard float64
	}{
		{"labor cost", domain.DeriveTiersRequest{MaterialsCost: 500, LaborCost: f64(600)}, 1100},
		{"hours at configured rate", domain.DeriveTiersRequest{MaterialsCost: 500, LaborHours: f64(8)}, 1100},
		{"hours at given rate", domain.DeriveTiersRequest{MaterialsCost: 500, LaborHours: f64(8), HourlyRate: f64(50)}, 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Tiers(&tt.req)
			require.NoError(t, err)
			require.Len(t, resp.Tiers, 3)
			assert.Equal(t, domain.TierStandard, resp.Tiers[1].Tier)
			assert.InDelta(t, tt.standard, resp.Tiers[1].TotalPrice, 0.001)
			assert.Equal(t, "test", resp.PricingVersion)
		})
	}

	_, err := svc.Tiers(&domain.DeriveTiersRequest{MaterialsCost: 500})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
