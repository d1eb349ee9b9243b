package handler

import (
	"net/http"

	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/service"
	"go.uber.org/zap"
)

type SendHandler struct {
	sendService *service.SendService
	logger      *zap.Logger
}

func NewSendHandler(sendService *service.SendService, logger *zap.Logger) *SendHandler {
	return &SendHandler{
		sendService: sendService,
		logger:      logger,
	}
}

// @Summary Send submission
// @Description Mails an approved submission now, schedules it, or saves the email as a draft.
// @Tags Send
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body domain.SendRequest true "Send options"
// @Success 200 {object} domain.SendResponse
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Not approved"
// @Failure 502 {object} domain.APIError "Mail delivery failed"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/send [post]
func (h *SendHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req domain.SendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.sendService.Send(r.Context(), id, a, &req)
	if err != nil {
		handleError(w, h.logger, err, "send submission")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
