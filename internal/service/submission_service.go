package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/logger"
	"github.com/toiture-lv/quote-api/internal/mapper"
	"github.com/toiture-lv/quote-api/internal/repository"
	"github.com/toiture-lv/quote-api/internal/workflow"
	"go.uber.org/zap"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type SubmissionService struct {
	submissionRepo *repository.SubmissionRepository
	machine        *workflow.Machine
	logger         *zap.Logger
}

func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	machine *workflow.Machine,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		machine:        machine,
		logger:         logger,
	}
}

// Create stores a new draft handed over by the quote generator
func (s *SubmissionService) Create(ctx context.Context, actor domain.Actor, req *domain.CreateSubmissionRequest) (*domain.SubmissionDTO, error) {
	sub, err := s.machine.Create(actor, mapper.ToCreateInput(req))
	if err != nil {
		return nil, err
	}

	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	logger.WithActor(logger.WithSubmission(s.logger, sub), actor).Info("submission created",
		zap.String("category", sub.Category),
	)

	dto := mapper.ToSubmissionDTO(sub)
	return &dto, nil
}

// GetByID returns a submission with its children summaries
func (s *SubmissionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubmissionDTO, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToSubmissionDTO(sub)
	return &dto, nil
}

// List returns summaries newest first. A non-positive limit means the default.
func (s *SubmissionService) List(ctx context.Context, status string, limit, offset int) (*domain.SubmissionListResponse, error) {
	filters := repository.SubmissionFilters{Limit: limit, Offset: offset}

	if status != "" {
		st := domain.SubmissionStatus(status)
		if !st.IsValid() {
			return nil, domain.Validationf("unknown status %q", status)
		}
		filters.Status = &st
	}
	if offset < 0 {
		return nil, domain.Validationf("offset must not be negative")
	}
	if filters.Limit <= 0 {
		filters.Limit = DefaultListLimit
	}
	if filters.Limit > MaxListLimit {
		filters.Limit = MaxListLimit
	}

	items, total, err := s.submissionRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	resp := &domain.SubmissionListResponse{
		Items:  make([]domain.SubmissionSummaryDTO, 0, len(items)),
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, mapper.ToSubmissionSummaryDTO(it))
	}
	return resp, nil
}

// Propose normalizes a draft update without saving it
func (s *SubmissionService) Propose(ctx context.Context, id uuid.UUID, actor domain.Actor, req *domain.UpdateSubmissionRequest) (*domain.ProposalDTO, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	proposal, err := s.machine.Propose(sub, actor, mapper.ToChanges(req))
	if err != nil {
		return nil, err
	}

	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

// Update commits a draft update through the same proposal path
func (s *SubmissionService) Update(ctx context.Context, id uuid.UUID, actor domain.Actor, req *domain.UpdateSubmissionRequest) (*domain.SubmissionDTO, error) {
	return s.transition(ctx, id, actor, "submission updated", func(sub *domain.Submission) (*domain.Submission, error) {
		return s.machine.Update(sub, actor, mapper.ToChanges(req))
	})
}

// Finalize sends a draft for approval
func (s *SubmissionService) Finalize(ctx context.Context, id uuid.UUID, actor domain.Actor) (*domain.SubmissionDTO, error) {
	return s.transition(ctx, id, actor, "submission finalized", func(sub *domain.Submission) (*domain.Submission, error) {
		return s.machine.Finalize(sub, actor)
	})
}

// Approve accepts a pending submission. Admin only.
func (s *SubmissionService) Approve(ctx context.Context, id uuid.UUID, actor domain.Actor) (*domain.SubmissionDTO, error) {
	return s.transition(ctx, id, actor, "submission approved", func(sub *domain.Submission) (*domain.Submission, error) {
		return s.machine.Approve(sub, actor)
	})
}

// Reject refuses a pending submission with an optional reason. Admin only.
func (s *SubmissionService) Reject(ctx context.Context, id uuid.UUID, actor domain.Actor, reason string) (*domain.SubmissionDTO, error) {
	return s.transition(ctx, id, actor, "submission rejected", func(sub *domain.Submission) (*domain.Submission, error) {
		return s.machine.Reject(sub, actor, reason)
	})
}

// ReturnToDraft reopens a rejected or pending submission
func (s *SubmissionService) ReturnToDraft(ctx context.Context, id uuid.UUID, actor domain.Actor) (*domain.SubmissionDTO, error) {
	return s.transition(ctx, id, actor, "submission returned to draft", func(sub *domain.Submission) (*domain.Submission, error) {
		return s.machine.ReturnToDraft(sub, actor)
	})
}

// AddNote appends a note in any status
func (s *SubmissionService) AddNote(ctx context.Context, id uuid.UUID, actor domain.Actor, text string) (*domain.NoteResponse, error) {
	var note *domain.Note
	dto, err := s.transition(ctx, id, actor, "note added", func(sub *domain.Submission) (*domain.Submission, error) {
		next, n, err := s.machine.AddNote(sub, actor, text)
		note = n
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &domain.NoteResponse{Note: *note, Submission: *dto}, nil
}

// transition loads the submission, applies one workflow operation and saves
// the result. Nothing is written when the operation fails.
func (s *SubmissionService) transition(
	ctx context.Context,
	id uuid.UUID,
	actor domain.Actor,
	event string,
	apply func(*domain.Submission) (*domain.Submission, error),
) (*domain.SubmissionDTO, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := apply(sub)
	if err != nil {
		return nil, err
	}

	if err := s.submissionRepo.Update(ctx, next); err != nil {
		return nil, err
	}

	logger.WithActor(logger.WithSubmission(s.logger, next), actor).Info(event)

	dto := mapper.ToSubmissionDTO(next)
	return &dto, nil
}
