package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/service"
	"go.uber.org/zap"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
	logger            *zap.Logger
}

func NewSubmissionHandler(submissionService *service.SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// @Summary List submissions
// @Description Newest first. limit defaults to 50 and is capped at 200.
// @Tags Submissions
// @Produce json
// @Param status query string false "Filter by status" Enums(draft, pending_approval, approved, rejected)
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} domain.SubmissionListResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions [get]
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, offset := 0, 0
	var err error
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			respondWithError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			respondWithError(w, http.StatusBadRequest, "offset must be an integer")
			return
		}
	}

	result, err := h.submissionService.List(r.Context(), q.Get("status"), limit, offset)
	if err != nil {
		handleError(w, h.logger, err, "list submissions")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// @Summary Create submission
// @Description Stores a draft handed over by the quote generator. Tiers are derived from the line items when none are given.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param request body domain.CreateSubmissionRequest true "Submission data"
// @Success 201 {object} domain.SubmissionDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions [post]
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req domain.CreateSubmissionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sub, err := h.submissionService.Create(r.Context(), a, &req)
	if err != nil {
		handleError(w, h.logger, err, "create submission")
		return
	}

	w.Header().Set("Location", "/api/v1/submissions/"+sub.ID.String())
	respondJSON(w, http.StatusCreated, sub)
}

// @Summary Get submission
// @Tags Submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} domain.SubmissionDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	sub, err := h.submissionService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err, "get submission")
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// @Summary Update draft
// @Description Partial update of a draft. Totals and tiers are recomputed when line items change.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body domain.UpdateSubmissionRequest true "Fields to change"
// @Success 200 {object} domain.SubmissionDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Not a draft"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id} [patch]
func (h *SubmissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, a, req, ok := h.updateRequest(w, r)
	if !ok {
		return
	}

	sub, err := h.submissionService.Update(r.Context(), id, a, req)
	if err != nil {
		handleError(w, h.logger, err, "update submission")
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// @Summary Preview draft update
// @Description Returns the normalized draft and change summary without saving anything.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body domain.UpdateSubmissionRequest true "Fields to change"
// @Success 200 {object} domain.ProposalDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Not a draft"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/proposals [post]
func (h *SubmissionHandler) Propose(w http.ResponseWriter, r *http.Request) {
	id, a, req, ok := h.updateRequest(w, r)
	if !ok {
		return
	}

	proposal, err := h.submissionService.Propose(r.Context(), id, a, req)
	if err != nil {
		handleError(w, h.logger, err, "propose submission update")
		return
	}
	respondJSON(w, http.StatusOK, proposal)
}

func (h *SubmissionHandler) updateRequest(w http.ResponseWriter, r *http.Request) (id uuid.UUID, a domain.Actor, req *domain.UpdateSubmissionRequest, ok bool) {
	if id, ok = parseID(w, r); !ok {
		return
	}
	if a, ok = actor(w, r); !ok {
		return
	}
	req = &domain.UpdateSubmissionRequest{}
	ok = decodeAndValidate(w, r, req)
	return
}

// @Summary Add note
// @Description Notes can be added in any status.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body domain.AddNoteRequest true "Note"
// @Success 201 {object} domain.NoteResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/notes [post]
func (h *SubmissionHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req domain.AddNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.submissionService.AddNote(r.Context(), id, a, req.Text)
	if err != nil {
		handleError(w, h.logger, err, "add note")
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}
