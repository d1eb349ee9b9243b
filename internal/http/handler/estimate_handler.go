package handler

import (
	"net/http"

	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/service"
	"go.uber.org/zap"
)

type EstimateHandler struct {
	estimateService *service.EstimateService
	logger          *zap.Logger
}

func NewEstimateHandler(estimateService *service.EstimateService, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
		logger:          logger,
	}
}

// @Summary Estimate labor hours
// @Tags Estimates
// @Accept json
// @Produce json
// @Param request body domain.EstimateHoursRequest true "Tier and factor selections"
// @Success 200 {object} complexity.Estimate
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/hours [post]
func (h *EstimateHandler) Hours(w http.ResponseWriter, r *http.Request) {
	var req domain.EstimateHoursRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	est, err := h.estimateService.Hours(&req)
	if err != nil {
		handleError(w, h.logger, err, "estimate hours")
		return
	}
	respondJSON(w, http.StatusOK, est)
}

// @Summary Derive pricing tiers
// @Tags Estimates
// @Accept json
// @Produce json
// @Param request body domain.DeriveTiersRequest true "Costs"
// @Success 200 {object} domain.TiersResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/tiers [post]
func (h *EstimateHandler) Tiers(w http.ResponseWriter, r *http.Request) {
	var req domain.DeriveTiersRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.estimateService.Tiers(&req)
	if err != nil {
		handleError(w, h.logger, err, "derive tiers")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
