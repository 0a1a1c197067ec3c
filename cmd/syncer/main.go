// Command syncer runs the scheduled sync for every user with stored
// credentials.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/fantasy-sync/internal/app"
	"github.com/riskibarqy/fantasy-sync/internal/config"
	"github.com/riskibarqy/fantasy-sync/internal/observability"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
	"github.com/robfig/cron/v3"
)

func main() {
	once := flag.Bool("once", false, "run one batch sync and exit")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.LogLevel, cfg.AppEnv != config.EnvDev).With("service", cfg.ServiceName+"-syncer")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	run := func() {
		runCtx, cancel := context.WithTimeout(ctx, usecase.ScheduledRunTimeout)
		defer cancel()

		report, err := application.Sync.SyncAll(runCtx)
		if err != nil {
			logger.Error("scheduled sync failed", "error", err)
			return
		}
		logger.Info("scheduled sync done",
			"users", len(report.Users),
			"success_count", report.SuccessCount,
			"failed_count", report.FailedCount,
		)
	}

	if *once {
		run()
		return
	}

	debugSrv, err := observability.StartDebugServer(cfg, application.Metrics.Handler(), logger)
	if err != nil {
		logger.Error("start debug server", "error", err)
		os.Exit(1)
	}

	cronLog := cronLogger{logger: logger.Named("cron")}
	scheduler := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	if _, err := scheduler.AddFunc(cfg.SyncSchedule, run); err != nil {
		logger.Error("register sync schedule", "schedule", cfg.SyncSchedule, "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info("syncer started", "schedule", cfg.SyncSchedule, "workers", cfg.SyncWorkers)

	<-ctx.Done()

	// Stop waits for a running batch; its context is already cancelled.
	<-scheduler.Stop().Done()
	if err := observability.StopDebugServer(debugSrv, logger, 5*time.Second); err != nil {
		logger.Warn("stop debug server", "error", err)
	}
	logger.Info("syncer stopped")
}

// cronLogger adapts the process logger to cron.Logger.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
