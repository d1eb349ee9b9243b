package service

import (
	"github.com/toiture-lv/quote-api/internal/complexity"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/mapper"
	"github.com/toiture-lv/quote-api/internal/pricing"
)

// EstimateService exposes the labor hours and tier calculators
type EstimateService struct {
	scorer     *complexity.Scorer
	markups    pricing.Markups
	hourlyRate float64
}

func NewEstimateService(scorer *complexity.Scorer, markups pricing.Markups, hourlyRate float64) *EstimateService {
	return &EstimateService{
		scorer:     scorer,
		markups:    markups,
		hourlyRate: hourlyRate,
	}
}

// Hours combines tier base hours, factor hours and manual extra hours
func (s *EstimateService) Hours(req *domain.EstimateHoursRequest) (*complexity.Estimate, error) {
	est, err := s.scorer.Estimate(req.Tier, mapper.ToSelections(req.Factors), req.ManualExtraHours)
	if err != nil {
		return nil, err
	}
	return &est, nil
}

// Tiers derives the three tiers from materials and either a labor cost or
// labor hours at an hourly rate. The configured rate applies when none is given.
func (s *EstimateService) Tiers(req *domain.DeriveTiersRequest) (*domain.TiersResponse, error) {
	var labor float64
	switch {
	case req.LaborCost != nil:
		labor = *req.LaborCost
	case req.LaborHours != nil:
		rate := s.hourlyRate
		if req.HourlyRate != nil {
			rate = *req.HourlyRate
		}
		cost, err := pricing.LaborCost(*req.LaborHours, rate)
		if err != nil {
			return nil, err
		}
		labor = cost
	default:
		return nil, domain.Validationf("labor_cost or labor_hours is required")
	}

	tiers, err := pricing.DeriveTiers(req.MaterialsCost, labor, s.markups)
	if err != nil {
		return nil, err
	}
	return &domain.TiersResponse{Tiers: tiers, PricingVersion: s.markups.Version}, nil
}
