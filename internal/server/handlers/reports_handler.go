package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/domain/models"
)

// DailyReportRunner triggers an immediate daily report build and delivery.
type DailyReportRunner interface {
	RunNow(ctx context.Context) models.DailyReport
}

// ReportsHandler exposes the manual daily report trigger.
type ReportsHandler struct {
	runner DailyReportRunner
	logger *zap.Logger
}

// NewReportsHandler constructs the HTTP handler adapter.
func NewReportsHandler(runner DailyReportRunner, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{runner: runner, logger: logger}
}

// RunDaily builds and delivers the daily report immediately.
func (h *ReportsHandler) RunDaily(c *gin.Context) {
	report := h.runner.RunNow(c.Request.Context())
	c.JSON(http.StatusOK, report)
}
