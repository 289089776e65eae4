package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthHandler handles health and readiness probes. A nil database means the
// service is running without a configured store and reports degraded readiness.
type HealthHandler struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *sql.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HandleRoot handles GET / with a service banner
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "college-event-api",
		"status":  "running",
	})
}

// HandleHealth handles GET /healthz. Liveness only, always healthy.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SuccessResponse{Data: map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}})
}

// HandleReadiness handles GET /readyz with a database connectivity check
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "healthy"
	statusCode := http.StatusOK

	if h.db == nil {
		status = "degraded"
		dbStatus = "not_configured"
	} else if err := h.checkDatabase(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		status = "unhealthy"
		dbStatus = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	respondJSON(w, statusCode, SuccessResponse{Data: map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"database": dbStatus,
		},
	}})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return err
	}

	var result int
	return h.db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
}
