// Package scheduler runs the nightly job that snapshots the day's numbers
// into a DailyReport, persists it and optionally pushes the summary to the
// farm manager over WhatsApp.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/config"
	"github.com/granjaops/granja/internal/domain/models"
	"github.com/granjaops/granja/internal/repository/blob"
	"github.com/granjaops/granja/internal/service/derived"
	"github.com/granjaops/granja/pkg/clients/whatsapp"
	"github.com/granjaops/granja/pkg/datefmt"
)

// Scheduler manages the daily report job.
type Scheduler struct {
	cron     *cron.Cron
	engine   *derived.Engine
	blobs    blob.Store
	notifier whatsapp.Client
	cfg      config.Config
	location *time.Location
	logger   *zap.Logger
}

// New creates a scheduler. notifier may be nil, in which case reports are
// only persisted.
func New(cfg config.Config, engine *derived.Engine, blobs blob.Store, notifier whatsapp.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using local", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		engine:   engine,
		blobs:    blobs,
		notifier: notifier,
		cfg:      cfg,
		location: location,
		logger:   logger,
	}
}

// Start registers the daily report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runDailyReport); err != nil {
		s.logger.Error("failed to schedule daily report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// RunNow builds and delivers the daily report immediately; used by the
// manual trigger endpoint.
func (s *Scheduler) RunNow(ctx context.Context) models.DailyReport {
	return s.deliver(ctx)
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	s.deliver(ctx)
}

func (s *Scheduler) deliver(ctx context.Context) models.DailyReport {
	report := s.buildReport()

	key := blob.KeyDailyReportPrefix + report.Date
	if err := s.blobs.Save(ctx, key, report); err != nil {
		s.logger.Error("failed persisting daily report", zap.Error(err))
	}

	if s.notifier == nil {
		s.logger.Info("daily report persisted", zap.String("date", report.Date))
		return report
	}

	req := whatsapp.SendTextMessageRequest{
		To:   s.cfg.WhatsApp.ManagerID,
		Body: formatReport(report),
	}
	if _, err := s.notifier.SendTextMessage(ctx, req); err != nil {
		s.logger.Error("failed sending daily report", zap.Error(err))
	} else {
		s.logger.Info("daily report sent", zap.String("date", report.Date))
	}

	return report
}

func (s *Scheduler) buildReport() models.DailyReport {
	now := time.Now().In(s.location)
	financial := s.engine.FinancialSummary()
	eggs := s.engine.EggProductionSummary()

	return models.DailyReport{
		Date:           datefmt.ISODate(now),
		EggsCollected:  eggs.Today,
		AvailableStock: s.engine.AvailableEggStock(),
		TotalRevenue:   financial.TotalRevenue,
		TotalExpenses:  financial.TotalExpenses,
		NetProfit:      financial.NetProfit,
		CreatedAt:      time.Now().UTC(),
	}
}

func formatReport(r models.DailyReport) string {
	return fmt.Sprintf(
		"Relatório %s\nOvos coletados hoje: %d\nEstoque disponível: %d\nReceita total: R$ %s\nDespesa total: R$ %s\nLucro líquido: R$ %s",
		r.Date, r.EggsCollected, r.AvailableStock,
		r.TotalRevenue.StringFixed(2), r.TotalExpenses.StringFixed(2), r.NetProfit.StringFixed(2),
	)
}
