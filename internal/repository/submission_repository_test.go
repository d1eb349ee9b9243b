package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/repository"
	"github.com/toiture-lv/quote-api/internal/testutil"
)

func TestSubmissionRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)
	ctx := context.Background()

	sub := testutil.CreateTestSubmission(t, db, "Bardeaux")

	got, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, domain.StatusDraft, got.Status)
	assert.Len(t, got.LineItems, 2)
	assert.Len(t, got.PricingTiers, 3)
	require.Len(t, got.AuditLog, 1)
	assert.Equal(t, domain.AuditCreated, got.AuditLog[0].Action)
	assert.Empty(t, got.Children)
}

func TestSubmissionRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmissionRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)
	ctx := context.Background()

	sub := testutil.CreateTestSubmission(t, db, "Bardeaux")
	sub.Status = domain.StatusPendingApproval
	sub.ClientName = "Gagnon"
	sub.AuditLog = append(sub.AuditLog, domain.AuditEntry{Action: domain.AuditFinalized, User: "marie", Timestamp: time.Now().UTC()})
	require.NoError(t, repo.Update(ctx, sub))

	got, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, got.Status)
	assert.Equal(t, "Gagnon", got.ClientName)
	assert.Len(t, got.AuditLog, 2)

	missing := *sub
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, &missing), domain.ErrNotFound)
}

func TestSubmissionRepository_ListAndChildren(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)
	ctx := context.Background()

	parent := testutil.CreateTestSubmission(t, db, "Bardeaux")
	other := testutil.CreateTestSubmission(t, db, "Elastomere")
	other.Status = domain.StatusApproved
	require.NoError(t, repo.Update(ctx, other))

	child := testutil.CreateTestSubmission(t, db, "Bardeaux")
	child.ParentSubmissionID = &parent.ID
	child.UpsellType = "gutters"
	require.NoError(t, repo.Update(ctx, child))

	t.Run("all", func(t *testing.T) {
		items, total, err := repo.List(ctx, repository.SubmissionFilters{Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 3)

		byID := map[uuid.UUID]domain.SubmissionSummary{}
		for _, it := range items {
			byID[it.ID] = it
		}
		assert.True(t, byID[parent.ID].HasChildren)
		assert.False(t, byID[child.ID].HasChildren)
		assert.Equal(t, "gutters", byID[child.ID].UpsellType)
	})

	t.Run("status filter", func(t *testing.T) {
		status := domain.StatusApproved
		items, total, err := repo.List(ctx, repository.SubmissionFilters{Status: &status, Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, other.ID, items[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		items, total, err := repo.List(ctx, repository.SubmissionFilters{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 1)
	})

	t.Run("children", func(t *testing.T) {
		got, err := repo.GetByID(ctx, parent.ID)
		require.NoError(t, err)
		require.Len(t, got.Children, 1)
		assert.Equal(t, child.ID, got.Children[0].ID)
		require.NotNil(t, got.Children[0].ParentSubmissionID)
		assert.Equal(t, parent.ID, *got.Children[0].ParentSubmissionID)
	})
}

func TestSubmissionRepository_ListDueScheduled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	due := testutil.CreateTestSubmission(t, db, "Bardeaux")
	past := now.Add(-time.Minute)
	due.SendStatus = domain.SendStatusScheduled
	due.ScheduledSendAt = &past
	require.NoError(t, repo.Update(ctx, due))

	later := testutil.CreateTestSubmission(t, db, "Bardeaux")
	future := now.Add(time.Hour)
	later.SendStatus = domain.SendStatusScheduled
	later.ScheduledSendAt = &future
	require.NoError(t, repo.Update(ctx, later))

	drafted := testutil.CreateTestSubmission(t, db, "Bardeaux")
	drafted.SendStatus = domain.SendStatusDraft
	drafted.ScheduledSendAt = &past
	require.NoError(t, repo.Update(ctx, drafted))

	subs, err := repo.ListDueScheduled(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, due.ID, subs[0].ID)
}

func TestRedFlagDismissalRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRedFlagDismissalRepository(db)
	ctx := context.Background()

	sub := testutil.CreateTestSubmission(t, db, "Bardeaux")
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, &domain.RedFlagDismissal{
		ID: uuid.New(), SubmissionID: sub.ID, Categories: []string{"geographic"}, DismissedBy: "marie", DismissedAt: now,
	}))
	require.NoError(t, repo.Create(ctx, &domain.RedFlagDismissal{
		ID: uuid.New(), SubmissionID: sub.ID, Categories: []string{"geographic", "budget_mismatch"}, DismissedBy: "luc", DismissedAt: now.Add(time.Second),
	}))

	list, err := repo.ListBySubmission(ctx, sub.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "marie", list[0].DismissedBy)
	assert.Equal(t, []string{"geographic", "budget_mismatch"}, list[1].Categories)

	set, err := repo.DismissedCategories(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"geographic": true, "budget_mismatch": true}, set)

	empty, err := repo.DismissedCategories(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
