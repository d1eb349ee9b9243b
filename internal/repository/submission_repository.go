package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/toiture-lv/quote-api/internal/domain"
	"gorm.io/gorm"
)

// SubmissionFilters narrows a list query
type SubmissionFilters struct {
	Status *domain.SubmissionStatus
	Limit  int
	Offset int
}

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	return wrap("create submission", r.db.WithContext(ctx).Create(sub).Error)
}

// GetByID loads a submission and the summaries of its children
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	var sub domain.Submission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, wrap("submission "+id.String(), err)
	}

	children, err := r.ChildrenOf(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.Children = children
	return &sub, nil
}

// Update writes every column of the submission. Last write wins.
func (r *SubmissionRepository) Update(ctx context.Context, sub *domain.Submission) error {
	result := r.db.WithContext(ctx).Model(sub).Select("*").Updates(sub)
	if result.Error != nil {
		return wrap("update submission", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundf("submission %s", sub.ID)
	}
	return nil
}

// List returns one page of summaries, newest first, and the total match count
func (r *SubmissionRepository) List(ctx context.Context, filters SubmissionFilters) ([]domain.SubmissionSummary, int64, error) {
	var subs []domain.Submission
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Submission{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrap("count submissions", err)
	}

	err := query.
		Order("created_at DESC").
		Order("id").
		Offset(filters.Offset).
		Limit(filters.Limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, wrap("list submissions", err)
	}

	parents, err := r.parentsAmong(ctx, subs)
	if err != nil {
		return nil, 0, err
	}

	items := make([]domain.SubmissionSummary, 0, len(subs))
	for i := range subs {
		summary := subs[i].Summary()
		summary.HasChildren = parents[subs[i].ID]
		items = append(items, summary)
	}
	return items, total, nil
}

// ChildrenOf returns the summaries of the upsells created from a submission
func (r *SubmissionRepository) ChildrenOf(ctx context.Context, parentID uuid.UUID) ([]domain.SubmissionSummary, error) {
	var subs []domain.Submission
	err := r.db.WithContext(ctx).
		Where("parent_submission_id = ?", parentID).
		Order("created_at ASC").
		Find(&subs).Error
	if err != nil {
		return nil, wrap("list children", err)
	}

	parents, err := r.parentsAmong(ctx, subs)
	if err != nil {
		return nil, err
	}

	children := make([]domain.SubmissionSummary, 0, len(subs))
	for i := range subs {
		summary := subs[i].Summary()
		summary.HasChildren = parents[subs[i].ID]
		children = append(children, summary)
	}
	return children, nil
}

// ListDueScheduled returns scheduled submissions whose send time has passed
func (r *SubmissionRepository) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]domain.Submission, error) {
	var subs []domain.Submission
	err := r.db.WithContext(ctx).
		Where("send_status = ? AND scheduled_send_at <= ?", domain.SendStatusScheduled, now).
		Order("scheduled_send_at ASC").
		Limit(limit).
		Find(&subs).Error
	if err != nil {
		return nil, wrap("list scheduled sends", err)
	}
	return subs, nil
}

// parentsAmong reports which of the given submissions have at least one child
func (r *SubmissionRepository) parentsAmong(ctx context.Context, subs []domain.Submission) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	if len(subs) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(subs))
	for i := range subs {
		ids = append(ids, subs[i].ID)
	}

	var parentIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Submission{}).
		Distinct("parent_submission_id").
		Where("parent_submission_id IN ?", ids).
		Pluck("parent_submission_id", &parentIDs).Error
	if err != nil {
		return nil, wrap("load child counts", err)
	}
	for _, id := range parentIDs {
		out[id] = true
	}
	return out, nil
}
