package handler

import (
	"net/http"
	"strings"

	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/redflag"
	"github.com/toiture-lv/quote-api/internal/service"
	"go.uber.org/zap"
)

type RedFlagHandler struct {
	redFlagService *service.RedFlagService
	logger         *zap.Logger
}

func NewRedFlagHandler(redFlagService *service.RedFlagService, logger *zap.Logger) *RedFlagHandler {
	return &RedFlagHandler{
		redFlagService: redFlagService,
		logger:         logger,
	}
}

// parseLangs reads a comma separated lang parameter. Empty means every language.
func parseLangs(raw string) []redflag.Lang {
	var langs []redflag.Lang
	seen := map[redflag.Lang]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		l := redflag.ParseLang(part)
		if !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	return langs
}

// @Summary Red flags
// @Description Advisory pre-send checks. Flags dismissed earlier are marked.
// @Tags Red Flags
// @Produce json
// @Param id path string true "Submission ID"
// @Param lang query string false "Comma separated message languages" example(fr,en)
// @Success 200 {object} domain.RedFlagsResponse
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/red-flags [get]
func (h *RedFlagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	resp, err := h.redFlagService.Evaluate(r.Context(), id, parseLangs(r.URL.Query().Get("lang"))...)
	if err != nil {
		handleError(w, h.logger, err, "evaluate red flags")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// @Summary Dismiss red flags
// @Description Records that the caller reviewed the flags. Any category can be dismissed.
// @Tags Red Flags
// @Accept json
// @Param id path string true "Submission ID"
// @Param request body domain.DismissFlagsRequest true "Categories"
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/dismiss-flags [post]
func (h *RedFlagHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req domain.DismissFlagsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.redFlagService.Dismiss(r.Context(), id, a, req.Categories); err != nil {
		handleError(w, h.logger, err, "dismiss red flags")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
