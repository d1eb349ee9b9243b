package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/mailer"
	"github.com/toiture-lv/quote-api/internal/pricing"
	"github.com/toiture-lv/quote-api/internal/repository"
	"github.com/toiture-lv/quote-api/internal/service"
	"github.com/toiture-lv/quote-api/internal/storage"
	"github.com/toiture-lv/quote-api/internal/testutil"
	"github.com/toiture-lv/quote-api/internal/upsell"
	"github.com/toiture-lv/quote-api/internal/workflow"
	"gorm.io/gorm"
)

var (
	estimator = domain.Actor{User: "marie", Role: domain.RoleEstimator}
	admin     = domain.Actor{User: "luc", Role: domain.RoleAdmin}
	markups   = pricing.Markups{Version: "test", Basic: -0.15, Premium: 0.18}
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

var errMailboxDown = errors.New("mailbox unavailable")

type fixture struct {
	db          *gorm.DB
	repo        *repository.SubmissionRepository
	submissions *service.SubmissionService
	upsells     *service.UpsellService
	redFlags    *service.RedFlagService
	send        *service.SendService
	mail        *fakeMailer
	store       *storage.LocalStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := testutil.Logger()
	repo := repository.NewSubmissionRepository(db)
	dismissals := repository.NewRedFlagDismissalRepository(db)
	machine := workflow.NewMachine(markups)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	cat, err := upsell.Parse([]byte(`{
		"version": "test",
		"categories": {"Bardeaux": [{"type": "ventilation", "name_fr": "Ventilation", "name_en": "Ventilation"}]},
		"universal": [{"type": "gutters", "name_fr": "Gouttières", "name_en": "Gutters"}]
	}`))
	require.NoError(t, err)

	mail := &fakeMailer{}
	return &fixture{
		db:          db,
		repo:        repo,
		submissions: service.NewSubmissionService(repo, machine, log),
		upsells:     service.NewUpsellService(repo, upsell.StaticSource{Cat: cat}, machine, log),
		redFlags:    service.NewRedFlagService(repo, dismissals, testRules, log),
		send:        service.NewSendService(repo, machine, mail, storage.NewArchiver(store), log),
		mail:        mail,
		store:       store,
	}
}

func draftRequest() *domain.CreateSubmissionRequest {
	return &domain.CreateSubmissionRequest{
		Category:   "Bardeaux",
		ClientName: "Tremblay",
		LineItems: []domain.LineItemRequest{
			{Type: domain.LineItemMaterial, Name: "Shingles", Quantity: 2, UnitPrice: 50},
			{Type: domain.LineItemLabor, Name: "Install", Quantity: 3, UnitPrice: 75},
		},
	}
}

func (f *fixture) createDraft(t *testing.T) *domain.SubmissionDTO {
	t.Helper()
	dto, err := f.submissions.Create(context.Background(), estimator, draftRequest())
	require.NoError(t, err)
	return dto
}

func (f *fixture) createApproved(t *testing.T) *domain.SubmissionDTO {
	t.Helper()
	ctx := context.Background()
	dto := f.createDraft(t)
	_, err := f.submissions.Finalize(ctx, dto.ID, estimator)
	require.NoError(t, err)
	dto, err = f.submissions.Approve(ctx, dto.ID, admin)
	require.NoError(t, err)
	return dto
}

func auditActions(dto *domain.SubmissionDTO) []domain.AuditAction {
	out := make([]domain.AuditAction, 0, len(dto.AuditLog))
	for _, e := range dto.AuditLog {
		out = append(out, e.Action)
	}
	return out
}
