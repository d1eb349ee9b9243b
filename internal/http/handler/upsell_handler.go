package handler

import (
	"net/http"

	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/service"
	"go.uber.org/zap"
)

type UpsellHandler struct {
	upsellService *service.UpsellService
	logger        *zap.Logger
}

func NewUpsellHandler(upsellService *service.UpsellService, logger *zap.Logger) *UpsellHandler {
	return &UpsellHandler{
		upsellService: upsellService,
		logger:        logger,
	}
}

// @Summary Upsell suggestions
// @Description Catalog entries for the submission's category and complexity, minus types already created.
// @Tags Upsells
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {array} domain.UpsellSuggestionDTO
// @Failure 404 {object} domain.APIError
// @Failure 502 {object} domain.APIError "Catalog unavailable"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/upsell-suggestions [get]
func (h *UpsellHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	suggestions, err := h.upsellService.Suggestions(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err, "list upsell suggestions")
		return
	}
	respondJSON(w, http.StatusOK, suggestions)
}

// @Summary Create upsell
// @Description Starts a child draft linked to the submission.
// @Tags Upsells
// @Accept json
// @Produce json
// @Param id path string true "Parent submission ID"
// @Param request body domain.CreateUpsellRequest true "Upsell type"
// @Success 201 {object} domain.SubmissionDTO
// @Failure 400 {object} domain.APIError "Unknown upsell type"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/upsells [post]
func (h *UpsellHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req domain.CreateUpsellRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	child, err := h.upsellService.CreateUpsell(r.Context(), id, a, req.UpsellType)
	if err != nil {
		handleError(w, h.logger, err, "create upsell")
		return
	}

	w.Header().Set("Location", "/api/v1/submissions/"+child.ID.String())
	respondJSON(w, http.StatusCreated, child)
}
