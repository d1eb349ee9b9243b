package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/toiture-lv/quote-api/internal/auth"
	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/http/handler"
	"github.com/toiture-lv/quote-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/toiture-lv/quote-api/docs" // registers swagger docs
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Health     *handler.HealthHandler
	Submission *handler.SubmissionHandler
	Upsell     *handler.UpsellHandler
	RedFlag    *handler.RedFlagHandler
	Send       *handler.SendHandler
	Estimate   *handler.EstimateHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	handlers       Handlers
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		handlers:       handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)
	if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
		r.Use(chimw.Timeout(timeout))
	}

	r.Get("/health", rt.handlers.Health.Live)
	r.Get("/health/db", rt.handlers.Health.Database)
	r.Get("/health/ready", rt.handlers.Health.Ready)

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(middleware.TrackUser)
		r.Use(rt.rateLimiter.LimitByUser)

		r.Route("/submissions", func(r chi.Router) {
			r.Get("/", rt.handlers.Submission.List)
			r.Post("/", rt.handlers.Submission.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.handlers.Submission.GetByID)
				r.Patch("/", rt.handlers.Submission.Update)
				r.Post("/proposals", rt.handlers.Submission.Propose)
				r.Post("/notes", rt.handlers.Submission.AddNote)

				// Lifecycle
				r.Post("/finalize", rt.handlers.Submission.Finalize)
				r.With(rt.authMiddleware.RequireRole(domain.RoleAdmin)).Post("/approve", rt.handlers.Submission.Approve)
				r.With(rt.authMiddleware.RequireRole(domain.RoleAdmin)).Post("/reject", rt.handlers.Submission.Reject)
				r.Post("/return-to-draft", rt.handlers.Submission.ReturnToDraft)

				// Upsells
				r.Get("/upsell-suggestions", rt.handlers.Upsell.Suggestions)
				r.Post("/upsells", rt.handlers.Upsell.Create)

				// Red flags
				r.Get("/red-flags", rt.handlers.RedFlag.Get)
				r.Post("/dismiss-flags", rt.handlers.RedFlag.Dismiss)

				r.Post("/send", rt.handlers.Send.Send)
			})
		})

		r.Route("/estimates", func(r chi.Router) {
			r.Post("/hours", rt.handlers.Estimate.Hours)
			r.Post("/tiers", rt.handlers.Estimate.Tiers)
		})
	})

	return r
}
