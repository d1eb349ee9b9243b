package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/auth"
	"github.com/toiture-lv/quote-api/internal/complexity"
	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/http/handler"
	"github.com/toiture-lv/quote-api/internal/mailer"
	"github.com/toiture-lv/quote-api/internal/pricing"
	"github.com/toiture-lv/quote-api/internal/redflag"
	"github.com/toiture-lv/quote-api/internal/repository"
	"github.com/toiture-lv/quote-api/internal/service"
	"github.com/toiture-lv/quote-api/internal/storage"
	"github.com/toiture-lv/quote-api/internal/testutil"
	"github.com/toiture-lv/quote-api/internal/upsell"
	"github.com/toiture-lv/quote-api/internal/workflow"
	"gorm.io/gorm"
)

var (
	estimator = &auth.UserContext{Name: "marie", Role: domain.RoleEstimator, AuthType: "jwt"}
	admin     = &auth.UserContext{Name: "luc", Role: domain.RoleAdmin, AuthType: "jwt"}
)

type stubMailer struct{ err error }

func (m *stubMailer) Send(context.Context, mailer.Message) error { return m.err }

type handlers struct {
	db          *gorm.DB
	mail        *stubMailer
	submissions *service.SubmissionService
	submission  *handler.SubmissionHandler
	upsell      *handler.UpsellHandler
	redFlag     *handler.RedFlagHandler
	send        *handler.SendHandler
	estimate    *handler.EstimateHandler
	health      *handler.HealthHandler
}

func newHandlers(t *testing.T) *handlers {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := testutil.Logger()
	repo := repository.NewSubmissionRepository(db)
	markups := pricing.Markups{Version: "test", Basic: -0.15, Premium: 0.18}
	machine := workflow.NewMachine(markups)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	cat, err := upsell.Parse([]byte(`{
		"version": "test",
		"categories": {"Bardeaux": [{"type": "ventilation", "name_fr": "Ventilation", "name_en": "Ventilation"}]}
	}`))
	require.NoError(t, err)

	rules := redflag.RulesFromConfig(&config.RedFlagsConfig{
		Version:             "test",
		BudgetMismatchRatio: 0.70,
		MinMarginRatio:      0.15,
		BenchmarkRatio:      0.60,
	})

	mail := &stubMailer{}
	submissions := service.NewSubmissionService(repo, machine, log)
	return &handlers{
		db:          db,
		mail:        mail,
		submissions: submissions,
		submission:  handler.NewSubmissionHandler(submissions, log),
		upsell:      handler.NewUpsellHandler(service.NewUpsellService(repo, upsell.StaticSource{Cat: cat}, machine, log), log),
		redFlag:     handler.NewRedFlagHandler(service.NewRedFlagService(repo, repository.NewRedFlagDismissalRepository(db), rules, log), log),
		send:        handler.NewSendHandler(service.NewSendService(repo, machine, mail, storage.NewArchiver(store), log), log),
		estimate:    handler.NewEstimateHandler(service.NewEstimateService(complexity.NewScorer(nil), markups, 80), log),
		health:      handler.NewHealthHandler(db, nil, log),
	}
}

// newRequest builds a request with an optional JSON body, {id} path
// parameter and authenticated user
func newRequest(t *testing.T, method, target string, body any, id string, user *auth.UserContext) *http.Request {
	t.Helper()

	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		var buf bytes.Buffer
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req = httptest.NewRequest(method, target, &buf)
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := req.Context()
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	if user != nil {
		ctx = auth.WithUserContext(ctx, user)
	}
	return req.WithContext(ctx)
}

func serve(fn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	fn(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func createBody() domain.CreateSubmissionRequest {
	return domain.CreateSubmissionRequest{
		Category:    "Bardeaux",
		ClientName:  "Tremblay",
		ClientEmail: "tremblay@example.ca",
		LineItems: []domain.LineItemRequest{
			{Type: domain.LineItemMaterial, Name: "Shingles", Quantity: 2, UnitPrice: 50},
			{Type: domain.LineItemLabor, Name: "Install", Quantity: 3, UnitPrice: 75},
		},
	}
}

func (h *handlers) createDraft(t *testing.T) string {
	t.Helper()
	body := createBody()
	dto, err := h.submissions.Create(context.Background(), estimator.Actor(), &body)
	require.NoError(t, err)
	return dto.ID.String()
}

func (h *handlers) createApproved(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	id := h.createDraft(t)
	uid := uuid.MustParse(id)
	_, err := h.submissions.Finalize(ctx, uid, estimator.Actor())
	require.NoError(t, err)
	_, err = h.submissions.Approve(ctx, uid, admin.Actor())
	require.NoError(t, err)
	return id
}

var errMailboxDown = errors.New("mailbox unavailable")
