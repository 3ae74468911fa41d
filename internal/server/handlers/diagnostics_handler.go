package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DBPinger checks connectivity to the configured database.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// DiagnosticsHandler serves the database connectivity check. Pure
// infrastructure diagnostics; it touches none of the dashboard data.
type DiagnosticsHandler struct {
	pinger DBPinger
	logger *zap.Logger
}

// NewDiagnosticsHandler constructs the handler. pinger is nil when no
// database is configured.
func NewDiagnosticsHandler(pinger DBPinger, logger *zap.Logger) *DiagnosticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiagnosticsHandler{pinger: pinger, logger: logger}
}

// TestDBConnection pings the database and reports the round trip.
func (h *DiagnosticsHandler) TestDBConnection(c *gin.Context) {
	if h.pinger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Error("database ping failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "database unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"serverTime": time.Now().UTC().Format(time.RFC3339),
		"latencyMs":  time.Since(start).Milliseconds(),
	})
}
