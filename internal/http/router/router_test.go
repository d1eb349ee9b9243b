package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/auth"
	"github.com/toiture-lv/quote-api/internal/complexity"
	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/http/handler"
	"github.com/toiture-lv/quote-api/internal/http/middleware"
	"github.com/toiture-lv/quote-api/internal/http/router"
	"github.com/toiture-lv/quote-api/internal/pricing"
	"github.com/toiture-lv/quote-api/internal/repository"
	"github.com/toiture-lv/quote-api/internal/service"
	"github.com/toiture-lv/quote-api/internal/testutil"
	"github.com/toiture-lv/quote-api/internal/workflow"
)

const secret = "router-test-secret"

func setup(t *testing.T) (http.Handler, *auth.JWTValidator) {
	t.Helper()

	cfg := &config.Config{
		App:    config.AppConfig{Environment: "development"},
		Auth:   config.AuthConfig{JWTSecret: secret, APIKey: "proxy-key"},
		Server: config.ServerConfig{EnableSwagger: true, RequestTimeout: 5},
	}
	log := testutil.Logger()
	db := testutil.SetupTestDB(t)
	repo := repository.NewSubmissionRepository(db)
	markups := pricing.Markups{Version: "test"}
	machine := workflow.NewMachine(markups)

	rt := router.NewRouter(cfg, log,
		auth.NewMiddleware(&cfg.Auth, log),
		middleware.NewRateLimiter(&cfg.RateLimit, log),
		router.Handlers{
			Health:     handler.NewHealthHandler(db, nil, log),
			Submission: handler.NewSubmissionHandler(service.NewSubmissionService(repo, machine, log), log),
			Estimate:   handler.NewEstimateHandler(service.NewEstimateService(complexity.NewScorer(nil), markups, 75), log),
		},
	)
	return rt.Setup(), auth.NewJWTValidator(&cfg.Auth)
}

func do(h http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	h, _ := setup(t)

	w := do(h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health/ready", nil).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/swagger/doc.json", nil).Code)
}

func TestRouter_APIRequiresAuth(t *testing.T) {
	h, validator := setup(t)

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/api/v1/submissions", nil).Code)

	token, err := validator.IssueToken("marie", string(domain.RoleEstimator), time.Hour)
	require.NoError(t, err)
	bearer := map[string]string{"Authorization": "Bearer " + token}

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/v1/submissions", bearer).Code)

	proxy := map[string]string{
		auth.HeaderAPIKey:   "proxy-key",
		auth.HeaderUserName: "luc",
		auth.HeaderUserRole: "admin",
	}
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/v1/submissions?status=draft", proxy).Code)
}

func TestRouter_ApproveRequiresAdmin(t *testing.T) {
	h, validator := setup(t)

	token, err := validator.IssueToken("marie", string(domain.RoleEstimator), time.Hour)
	require.NoError(t, err)

	w := do(h, http.MethodPost, "/api/v1/submissions/00000000-0000-0000-0000-000000000001/approve", map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
