package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/domain/models"
	"github.com/granjaops/granja/internal/service/derived"
	"github.com/granjaops/granja/internal/store"
)

// DefaultSeriesDays is the day window used when a daily series request does
// not name one.
const DefaultSeriesDays = 7

// DashboardHandler serves every derived-data view plus the business profile.
type DashboardHandler struct {
	engine   *derived.Engine
	profiles *store.ProfileStore
	logger   *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(engine *derived.Engine, profiles *store.ProfileStore, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{engine: engine, profiles: profiles, logger: logger}
}

// FinancialSummary returns the lifetime revenue/expense totals.
func (h *DashboardHandler) FinancialSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.FinancialSummary())
}

// ProductionSummary returns today/month/year egg totals.
func (h *DashboardHandler) ProductionSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.EggProductionSummary())
}

// AvailableStock returns the produced-minus-sold egg balance.
func (h *DashboardHandler) AvailableStock(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"availableEggStock": h.engine.AvailableEggStock()})
}

// MonthlyFinancialSeries returns the twelve-month financial series for the
// year query parameter, defaulting to the current year.
func (h *DashboardHandler) MonthlyFinancialSeries(c *gin.Context) {
	year, ok := h.yearParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.engine.MonthlyFinancialSeries(year))
}

// MonthlyProductionSeries returns the twelve-month production series.
func (h *DashboardHandler) MonthlyProductionSeries(c *gin.Context) {
	year, ok := h.yearParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.engine.MonthlyProductionSeries(year))
}

// DailyProductionSeries returns the per-day production series for the days
// query parameter.
func (h *DashboardHandler) DailyProductionSeries(c *gin.Context) {
	days, ok := h.daysParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.engine.DailyProductionSeries(days))
}

// DailyPostureSeries returns the per-day posture percentage series.
func (h *DashboardHandler) DailyPostureSeries(c *gin.Context) {
	days, ok := h.daysParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.engine.DailyPosturePercentageSeries(days))
}

// GetProfile returns the normalized business profile.
func (h *DashboardHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.profiles.Get())
}

// SaveProfile replaces the business profile wholesale; the normalized
// result is returned.
func (h *DashboardHandler) SaveProfile(c *gin.Context) {
	var profile models.BusinessProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.logger.Warn("invalid profile payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if profile.ChickenCount < 0 || profile.ShedCount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "counts must not be negative"})
		return
	}
	if profile.DefaultFreightCost.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "defaultFreightCost must not be negative"})
		return
	}

	c.JSON(http.StatusOK, h.profiles.Save(c.Request.Context(), profile))
}

func (h *DashboardHandler) yearParam(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return 0, false
	}
	return year, true
}

func (h *DashboardHandler) daysParam(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return DefaultSeriesDays, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return 0, false
	}
	return days, true
}
