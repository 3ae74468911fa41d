package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/server/handlers"
)

// Handlers groups the HTTP adapters the router wires up.
type Handlers struct {
	Records     *handlers.RecordsHandler
	Dashboard   *handlers.DashboardHandler
	Export      *handlers.ExportHandler
	Auth        *handlers.AuthHandler
	Reports     *handlers.ReportsHandler
	Diagnostics *handlers.DiagnosticsHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/login", h.Auth.Login)

	r.GET("/transactions", h.Records.ListTransactions)
	r.POST("/transactions", h.Records.CreateTransaction)

	r.GET("/production", h.Records.ListProductionRecords)
	r.POST("/production", h.Records.CreateProductionRecord)
	r.PUT("/production/:id", h.Records.UpdateProductionRecord)
	r.DELETE("/production/:id", h.Records.DeleteProductionRecord)

	r.GET("/profile", h.Dashboard.GetProfile)
	r.PUT("/profile", h.Dashboard.SaveProfile)

	r.GET("/summary/financial", h.Dashboard.FinancialSummary)
	r.GET("/summary/production", h.Dashboard.ProductionSummary)
	r.GET("/stock", h.Dashboard.AvailableStock)
	r.GET("/series/financial/monthly", h.Dashboard.MonthlyFinancialSeries)
	r.GET("/series/production/monthly", h.Dashboard.MonthlyProductionSeries)
	r.GET("/series/production/daily", h.Dashboard.DailyProductionSeries)
	r.GET("/series/posture/daily", h.Dashboard.DailyPostureSeries)

	r.GET("/export/:kind", h.Export.Download)

	r.POST("/reports/daily/run", h.Reports.RunDaily)

	r.GET("/diagnostics/db", h.Diagnostics.TestDBConnection)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
