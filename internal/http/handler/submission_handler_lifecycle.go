package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/toiture-lv/quote-api/internal/domain"
)

type transitionFunc func(r *http.Request, id uuid.UUID, a domain.Actor) (*domain.SubmissionDTO, error)

// transition runs one status change and writes the updated submission
func (h *SubmissionHandler) transition(w http.ResponseWriter, r *http.Request, op string, fn transitionFunc) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	a, ok := actor(w, r)
	if !ok {
		return
	}

	sub, err := fn(r, id, a)
	if err != nil {
		handleError(w, h.logger, err, op)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// @Summary Finalize draft
// @Description Sends a draft for approval. At least one line item is required.
// @Tags Submission Lifecycle
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} domain.SubmissionDTO
// @Failure 400 {object} domain.APIError "No line items"
// @Failure 409 {object} domain.APIError "Not a draft"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/finalize [post]
func (h *SubmissionHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "finalize submission", func(r *http.Request, id uuid.UUID, a domain.Actor) (*domain.SubmissionDTO, error) {
		return h.submissionService.Finalize(r.Context(), id, a)
	})
}

// @Summary Approve submission
// @Tags Submission Lifecycle
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} domain.SubmissionDTO
// @Failure 403 {object} domain.APIError "Admin role required"
// @Failure 409 {object} domain.APIError "Not pending approval"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/approve [post]
func (h *SubmissionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "approve submission", func(r *http.Request, id uuid.UUID, a domain.Actor) (*domain.SubmissionDTO, error) {
		return h.submissionService.Approve(r.Context(), id, a)
	})
}

// @Summary Reject submission
// @Tags Submission Lifecycle
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body domain.RejectSubmissionRequest false "Optional reason"
// @Success 200 {object} domain.SubmissionDTO
// @Failure 403 {object} domain.APIError "Admin role required"
// @Failure 409 {object} domain.APIError "Not pending approval"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/reject [post]
func (h *SubmissionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req domain.RejectSubmissionRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, &req) {
		return
	}
	h.transition(w, r, "reject submission", func(r *http.Request, id uuid.UUID, a domain.Actor) (*domain.SubmissionDTO, error) {
		return h.submissionService.Reject(r.Context(), id, a, req.Reason)
	})
}

// @Summary Return to draft
// @Description Reopens a rejected submission, or lets an estimator pull back a pending one.
// @Tags Submission Lifecycle
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} domain.SubmissionDTO
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /submissions/{id}/return-to-draft [post]
func (h *SubmissionHandler) ReturnToDraft(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "return submission to draft", func(r *http.Request, id uuid.UUID, a domain.Actor) (*domain.SubmissionDTO, error) {
		return h.submissionService.ReturnToDraft(r.Context(), id, a)
	})
}
