// Package logger builds the service logger and the field sets shared by
// the request log and the submission services.
package logger

import (
	"fmt"

	"github.com/toiture-lv/quote-api/internal/config"
	"github.com/toiture-lv/quote-api/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates the service logger. JSON output is used in production
// or when the configured format is "json". Every entry carries the markup
// and red flag rule versions in effect.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Logging.Format == "json" || cfg.App.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	zapCfg.InitialFields = map[string]interface{}{
		"app":             cfg.App.Name,
		"environment":     cfg.App.Environment,
		"markups_version": cfg.Pricing.Version,
		"rules_version":   cfg.RedFlags.Version,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// WithRequest adds request context to logger
func WithRequest(logger *zap.Logger, method, path, requestID string) *zap.Logger {
	return logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
}

// WithActor adds the acting user and role
func WithActor(logger *zap.Logger, actor domain.Actor) *zap.Logger {
	return logger.With(
		zap.String("user", actor.User),
		zap.String("role", string(actor.Role)),
	)
}

// WithSubmission adds the submission id, its status and the pricing version
// its tiers were derived with. Upsell children also carry their parent.
func WithSubmission(logger *zap.Logger, sub *domain.Submission) *zap.Logger {
	fields := []zap.Field{
		zap.String("submission_id", sub.ID.String()),
		zap.String("status", string(sub.Status)),
		zap.String("pricing_version", sub.PricingVersion),
	}
	if sub.ParentSubmissionID != nil {
		fields = append(fields, zap.String("parent_id", sub.ParentSubmissionID.String()))
	}
	return logger.With(fields...)
}
