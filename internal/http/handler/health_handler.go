package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/toiture-lv/quote-api/internal/database"
	"github.com/toiture-lv/quote-api/internal/datawarehouse"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthTimeout = 3 * time.Second

// HealthHandler serves the unauthenticated liveness and readiness checks
type HealthHandler struct {
	db       *gorm.DB
	dwClient *datawarehouse.Client
	logger   *zap.Logger
}

// NewHealthHandler accepts a nil warehouse client when the warehouse is disabled
func NewHealthHandler(db *gorm.DB, dwClient *datawarehouse.Client, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:       db,
		dwClient: dwClient,
		logger:   logger,
	}
}

// @Summary Liveness check
// @Tags Health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// @Summary Database health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	stats, err := database.HealthCheckWithStats(ctx, h.db)
	if err != nil {
		h.logger.Error("database health check failed", zap.Error(err))
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"service": "database",
			"error":   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats":   stats,
	})
}

// @Summary Readiness check
// @Description The database must be reachable. The warehouse is reported but only degrades readiness.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	checks := make(map[string]interface{})
	status := "healthy"
	code := http.StatusOK

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Error("database health check failed", zap.Error(err))
		checks["database"] = map[string]string{"status": "unhealthy", "error": err.Error()}
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	} else {
		checks["database"] = map[string]string{"status": "healthy"}
	}

	dw := h.dwClient.HealthCheck(ctx)
	checks["datawarehouse"] = dw
	if dw.Status == "unhealthy" && code == http.StatusOK {
		status = "degraded"
	}

	respondJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
