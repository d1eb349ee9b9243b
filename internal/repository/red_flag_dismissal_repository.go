package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/toiture-lv/quote-api/internal/domain"
	"gorm.io/gorm"
)

type RedFlagDismissalRepository struct {
	db *gorm.DB
}

func NewRedFlagDismissalRepository(db *gorm.DB) *RedFlagDismissalRepository {
	return &RedFlagDismissalRepository{db: db}
}

func (r *RedFlagDismissalRepository) Create(ctx context.Context, d *domain.RedFlagDismissal) error {
	return wrap("record dismissal", r.db.WithContext(ctx).Create(d).Error)
}

// ListBySubmission returns dismissals oldest first
func (r *RedFlagDismissalRepository) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.RedFlagDismissal, error) {
	var out []domain.RedFlagDismissal
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("dismissed_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, wrap("list dismissals", err)
	}
	return out, nil
}

// DismissedCategories returns the set of categories ever dismissed for a submission
func (r *RedFlagDismissalRepository) DismissedCategories(ctx context.Context, submissionID uuid.UUID) (map[string]bool, error) {
	dismissals, err := r.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool)
	for _, d := range dismissals {
		for _, c := range d.Categories {
			out[c] = true
		}
	}
	return out, nil
}
