package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/eventdesk/internal/bootstrap"
	"github.com/MrJamesThe3rd/eventdesk/internal/config"
	"github.com/MrJamesThe3rd/eventdesk/internal/console"
	"github.com/MrJamesThe3rd/eventdesk/internal/export"
	eventdeskHttp "github.com/MrJamesThe3rd/eventdesk/internal/http"
	exportHandler "github.com/MrJamesThe3rd/eventdesk/internal/http/export"
	reportsHandler "github.com/MrJamesThe3rd/eventdesk/internal/http/reports"
	sessionHandler "github.com/MrJamesThe3rd/eventdesk/internal/http/session"
	tablesHandler "github.com/MrJamesThe3rd/eventdesk/internal/http/tables"
	"github.com/MrJamesThe3rd/eventdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	baseLogger := logger.Must(logger.New(logger.Options{Level: cfg.App.LogLevel, File: cfg.App.LogFile}))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := bootstrap.Backend(ctx, cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to open table store", zap.String("driver", cfg.TableStore.Driver), zap.Error(err))
	}
	defer func() { _ = closeBackend() }()

	money, err := bootstrap.Money(cfg)
	if err != nil {
		baseLogger.Fatal("invalid display settings", zap.Error(err))
	}

	var (
		adminConsole  = console.New(backend, baseLogger.Named("console"))
		exportService = export.NewService(adminConsole, money, baseLogger.Named("export"))
	)

	var (
		sessionH = sessionHandler.NewHandler(baseLogger.Named("auth"))
		tablesH  = tablesHandler.NewHandler(adminConsole)
		reportsH = reportsHandler.NewHandler(adminConsole, money)
		exportH  = exportHandler.NewHandler(exportService, baseLogger.Named("handlers.export"))
	)

	router := eventdeskHttp.New(cfg.Server.CORSOrigins, sessionH, tablesH, reportsH, exportH)

	sched, closeSinks, err := bootstrap.Snapshots(ctx, cfg, adminConsole, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init report snapshots", zap.Error(err))
	}
	defer closeSinks(context.Background())

	if sched != nil {
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start snapshot scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("starting server", zap.String("app", cfg.App.Name), zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
