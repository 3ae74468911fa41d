package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/config"
	"github.com/granjaops/granja/internal/repository/blob"
	"github.com/granjaops/granja/internal/repository/sheets"
	"github.com/granjaops/granja/internal/scheduler"
	"github.com/granjaops/granja/internal/server/handlers"
	"github.com/granjaops/granja/internal/server/router"
	authsvc "github.com/granjaops/granja/internal/service/auth"
	"github.com/granjaops/granja/internal/service/derived"
	exportsvc "github.com/granjaops/granja/internal/service/export"
	"github.com/granjaops/granja/internal/store"
	whatsappclient "github.com/granjaops/granja/pkg/clients/whatsapp"
	"github.com/granjaops/granja/pkg/datefmt"
	"github.com/granjaops/granja/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx := context.Background()

	var blobs blob.Store
	var pinger handlers.DBPinger
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		mongoStore, err := blob.NewMongoStore(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongo"))
		if err != nil {
			baseLogger.Fatal("failed to init mongodb blob store", zap.Error(err))
		}
		blobs = mongoStore
		pinger = mongoStore
	default:
		fileStore, err := blob.NewFileStore(cfg.Storage.DataDir, baseLogger.Named("repo.file"))
		if err != nil {
			baseLogger.Fatal("failed to init file blob store", zap.Error(err))
		}
		blobs = fileStore

		// Diagnostics can still target Mongo while data lives on disk.
		if cfg.MongoDB.URI != "" {
			diagStore, err := blob.NewMongoStore(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongo"))
			if err != nil {
				baseLogger.Warn("diagnostics mongodb connection failed", zap.Error(err))
			} else {
				pinger = diagStore
				defer func() {
					if err := diagStore.Close(context.Background()); err != nil {
						baseLogger.Error("failed to close diagnostics mongodb connection", zap.Error(err))
					}
				}()
			}
		}
	}
	defer func() {
		if err := blobs.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close blob store", zap.Error(err))
		}
	}()

	transactions := store.NewTransactionStore(ctx, blobs, baseLogger.Named("store.transactions"))
	production := store.NewProductionStore(ctx, blobs, baseLogger.Named("store.production"))
	profiles := store.NewProfileStore(ctx, blobs, baseLogger.Named("store.profile"))

	engine := derived.NewEngine(transactions, production, profiles, datefmt.New(cfg.Locale), baseLogger.Named("svc.derived"))

	var mirror sheets.Repository
	if cfg.Sheets.Enabled() {
		mirror, err = sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Warn("sheets mirror disabled", zap.Error(err))
			mirror = nil
		}
	}
	exporter := exportsvc.NewService(transactions, production, cfg.Storage.ExportDir, mirror, baseLogger.Named("svc.export"))

	authSvc := authsvc.NewService(cfg.Auth, baseLogger.Named("svc.auth"))

	var notifier whatsappclient.Client
	if cfg.WhatsApp.Enabled() {
		notifier = whatsappclient.NewClient(cfg.WhatsApp)
		baseLogger.Info("whatsapp daily report notifications enabled")
	} else {
		baseLogger.Info("whatsapp not configured, daily reports persist only")
	}

	sched := scheduler.New(*cfg, engine, blobs, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	engineRouter := router.New(router.Handlers{
		Records:     handlers.NewRecordsHandler(transactions, production, baseLogger.Named("handlers.records")),
		Dashboard:   handlers.NewDashboardHandler(engine, profiles, baseLogger.Named("handlers.dashboard")),
		Export:      handlers.NewExportHandler(exporter, baseLogger.Named("handlers.export")),
		Auth:        handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth")),
		Reports:     handlers.NewReportsHandler(sched, baseLogger.Named("handlers.reports")),
		Diagnostics: handlers.NewDiagnosticsHandler(pinger, baseLogger.Named("handlers.diagnostics")),
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engineRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-runCtx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
