package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/logger"
	"github.com/toiture-lv/quote-api/internal/mapper"
	"github.com/toiture-lv/quote-api/internal/repository"
	"github.com/toiture-lv/quote-api/internal/upsell"
	"github.com/toiture-lv/quote-api/internal/workflow"
	"go.uber.org/zap"
)

type UpsellService struct {
	submissionRepo *repository.SubmissionRepository
	catalog        upsell.Source
	machine        *workflow.Machine
	logger         *zap.Logger
}

func NewUpsellService(
	submissionRepo *repository.SubmissionRepository,
	catalog upsell.Source,
	machine *workflow.Machine,
	logger *zap.Logger,
) *UpsellService {
	return &UpsellService{
		submissionRepo: submissionRepo,
		catalog:        catalog,
		machine:        machine,
		logger:         logger,
	}
}

// Suggestions lists catalog entries for the submission's category and
// complexity that no existing child already covers
func (s *UpsellService) Suggestions(ctx context.Context, id uuid.UUID) ([]domain.UpsellSuggestionDTO, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	used := make([]string, 0, len(sub.Children))
	for _, c := range sub.Children {
		if c.UpsellType != "" {
			used = append(used, c.UpsellType)
		}
	}

	entries := cat.Suggestions(sub.Category, sub.ComplexityTier, used)
	out := make([]domain.UpsellSuggestionDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, mapper.ToUpsellSuggestionDTO(e))
	}
	return out, nil
}

// CreateUpsell stores a child draft of the given catalog type, then records
// the upsell on the parent. The two saves are independent.
func (s *UpsellService) CreateUpsell(ctx context.Context, parentID uuid.UUID, actor domain.Actor, upsellType string) (*domain.SubmissionDTO, error) {
	parent, err := s.submissionRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Lookup(parent.Category, upsellType); !ok {
		return nil, domain.Validationf("unknown upsell type %q for category %q", upsellType, parent.Category)
	}

	child, nextParent, err := s.machine.CreateUpsell(parent, actor, upsellType)
	if err != nil {
		return nil, err
	}

	if err := s.submissionRepo.Create(ctx, child); err != nil {
		return nil, err
	}
	if err := s.submissionRepo.Update(ctx, nextParent); err != nil {
		s.logger.Error("upsell child saved but parent audit entry was not",
			zap.String("submission_id", parentID.String()),
			zap.String("child_id", child.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.WithActor(logger.WithSubmission(s.logger, child), actor).Info("upsell created",
		zap.String("upsell_type", upsellType),
	)

	dto := mapper.ToSubmissionDTO(child)
	return &dto, nil
}
