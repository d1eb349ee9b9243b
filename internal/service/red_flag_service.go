package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/mapper"
	"github.com/toiture-lv/quote-api/internal/redflag"
	"github.com/toiture-lv/quote-api/internal/repository"
	"go.uber.org/zap"
)

// BenchmarkSource provides historical price per sqft by category
type BenchmarkSource interface {
	PricePerSqftBenchmark(ctx context.Context, category string) (*float64, error)
}

type RedFlagService struct {
	submissionRepo *repository.SubmissionRepository
	dismissalRepo  *repository.RedFlagDismissalRepository
	benchmarks     BenchmarkSource
	rules          redflag.Rules
	now            func() time.Time
	logger         *zap.Logger
}

func NewRedFlagService(
	submissionRepo *repository.SubmissionRepository,
	dismissalRepo *repository.RedFlagDismissalRepository,
	rules redflag.Rules,
	logger *zap.Logger,
) *RedFlagService {
	return &RedFlagService{
		submissionRepo: submissionRepo,
		dismissalRepo:  dismissalRepo,
		rules:          rules,
		now:            time.Now,
		logger:         logger,
	}
}

// SetBenchmarkSource sets the optional warehouse benchmark lookup
func (s *RedFlagService) SetBenchmarkSource(src BenchmarkSource) {
	s.benchmarks = src
}

// SetClock replaces the evaluation clock
func (s *RedFlagService) SetClock(now func() time.Time) {
	s.now = now
}

// Evaluate runs the checks and renders messages in the given languages
func (s *RedFlagService) Evaluate(ctx context.Context, id uuid.UUID, langs ...redflag.Lang) (*domain.RedFlagsResponse, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	evalCtx := redflag.Context{Now: s.now()}
	if s.benchmarks != nil {
		benchmark, err := s.benchmarks.PricePerSqftBenchmark(ctx, sub.Category)
		if err != nil {
			// The check falls back to the configured floor
			s.logger.Warn("price benchmark unavailable",
				zap.String("submission_id", id.String()),
				zap.String("category", sub.Category),
				zap.Error(err),
			)
		}
		evalCtx.PricePerSqftBenchmark = benchmark
	}

	dismissed, err := s.dismissalRepo.DismissedCategories(ctx, id)
	if err != nil {
		return nil, err
	}

	flags := redflag.Evaluate(sub, s.rules, evalCtx)
	resp := &domain.RedFlagsResponse{
		Flags:         make([]domain.RedFlagDTO, 0, len(flags)),
		RulesVersion:  s.rules.Version,
		BenchmarkUsed: evalCtx.PricePerSqftBenchmark != nil,
	}
	for _, f := range flags {
		if f.Severity == redflag.SeverityCritical {
			resp.HasCritical = true
		}
		resp.Flags = append(resp.Flags, mapper.ToRedFlagDTO(f, dismissed[string(f.Category)], langs...))
	}
	return resp, nil
}

// Dismiss records that the actor reviewed and dismissed the categories.
// The submission itself is not modified.
func (s *RedFlagService) Dismiss(ctx context.Context, id uuid.UUID, actor domain.Actor, categories []string) error {
	if actor.User == "" {
		return domain.Validationf("acting user is required")
	}
	if len(categories) == 0 {
		return domain.Validationf("at least one category is required")
	}

	seen := make(map[string]bool, len(categories))
	unique := make([]string, 0, len(categories))
	for _, c := range categories {
		cat := redflag.Category(c)
		if !cat.IsValid() {
			return domain.Validationf("unknown red flag category %q", c)
		}
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}

	if _, err := s.submissionRepo.GetByID(ctx, id); err != nil {
		return err
	}

	dismissal := &domain.RedFlagDismissal{
		ID:           uuid.New(),
		SubmissionID: id,
		Categories:   unique,
		DismissedBy:  actor.User,
		DismissedAt:  s.now().UTC(),
	}
	if err := s.dismissalRepo.Create(ctx, dismissal); err != nil {
		return err
	}

	s.logger.Info("red flags dismissed",
		zap.String("submission_id", id.String()),
		zap.Strings("categories", unique),
		zap.String("user", actor.User),
	)
	return nil
}
